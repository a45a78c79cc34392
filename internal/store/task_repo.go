package store

import (
	"context"
	"encoding/json"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"taskan/internal/models"
)

const taskReturn = "RETURN t.id AS id, t.title AS title, t.description AS description, " +
	"t.status AS status, t.position AS position, per.id AS period_id, t.due_date AS due_date, " +
	"t.assignee_ids AS assignee_ids, t.attachments AS attachments, t.created_at AS created_at"

// Neo4jTaskRepository stores tasks as Task nodes linked to their period by
// an IN_PERIOD relationship. Assignees are kept as an id list property and
// attachments as a JSON string; both are opaque to the store.
type Neo4jTaskRepository struct {
	driver neo4j.DriverWithContext
}

// NewTaskRepository creates a task repository on driver.
func NewTaskRepository(driver neo4j.DriverWithContext) *Neo4jTaskRepository {
	return &Neo4jTaskRepository{driver: driver}
}

func decodeTask(values []any) models.Task {
	task := models.Task{
		ID:          strVal(values[0]),
		Title:       strVal(values[1]),
		Description: strVal(values[2]),
		Status:      models.TaskStatus(strVal(values[3])),
		Position:    intVal(values[4]),
		PeriodID:    strVal(values[5]),
		DueDate:     timePtrVal(values[6]),
		CreatedAt:   timeVal(values[9]),
	}
	for _, id := range strListVal(values[7]) {
		task.Assignees = append(task.Assignees, models.User{ID: id})
	}
	if raw := strVal(values[8]); raw != "" {
		// A decode failure leaves attachments empty rather than failing
		// the whole fetch; the metadata is opaque anyway.
		_ = json.Unmarshal([]byte(raw), &task.Attachments)
	}
	return task
}

func taskProps(t *models.Task) map[string]any {
	assigneeIDs := make([]string, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		assigneeIDs = append(assigneeIDs, a.ID)
	}
	attachments := ""
	if len(t.Attachments) > 0 {
		if data, err := json.Marshal(t.Attachments); err == nil {
			attachments = string(data)
		}
	}
	return map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"status":      string(t.Status),
		"position":    t.Position,
		"dueDate":     timePtrProp(t.DueDate),
		"assigneeIDs": assigneeIDs,
		"attachments": attachments,
		"createdAt":   timeProp(t.CreatedAt),
	}
}

// FindByParent lists a period's tasks ordered by position, ties broken by
// creation time. Assignees come back as id-only stubs.
func (r *Neo4jTaskRepository) FindByParent(ctx context.Context, periodID string) ([]models.Task, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task)-[:IN_PERIOD]->(per:Period {id: $periodID}) "+
				taskReturn+" ORDER BY t.position ASC, t.created_at ASC",
			map[string]any{"periodID": periodID},
		)
		if err != nil {
			return nil, err
		}

		var tasks []models.Task
		for res.Next(ctx) {
			tasks = append(tasks, decodeTask(res.Record().Values))
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return tasks, nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return result.([]models.Task), nil
}

// FindByID fetches one task, including its period id for access checks.
func (r *Neo4jTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id})-[:IN_PERIOD]->(per:Period) "+taskReturn,
			map[string]any{"id": id},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			task := decodeTask(res.Record().Values)
			return &task, nil
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if result == nil {
		return nil, models.ErrNotFound
	}
	return result.(*models.Task), nil
}

// Create links a new task to its period. A missing period yields
// ErrNotFound.
func (r *Neo4jTaskRepository) Create(ctx context.Context, t *models.Task) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	props := taskProps(t)
	props["periodID"] = t.PeriodID

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (per:Period {id: $periodID}) "+
				"CREATE (t:Task {id: $id, title: $title, description: $description, status: $status, "+
				"position: $position, due_date: $dueDate, assignee_ids: $assigneeIDs, "+
				"attachments: $attachments, created_at: $createdAt})-[:IN_PERIOD]->(per) "+
				"RETURN t.id",
			props,
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return true, nil
		}
		return false, res.Err()
	})
	if err != nil {
		return storeErr(err)
	}
	if result != true {
		return models.ErrNotFound
	}
	return nil
}

// Update rewrites every mutable field. Last write wins; concurrent edits
// are resolved by whoever persists last, matching the dashboard's
// refetch-after-mutation model.
func (r *Neo4jTaskRepository) Update(ctx context.Context, t *models.Task) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id}) "+
				"SET t.title = $title, t.description = $description, t.status = $status, "+
				"t.position = $position, t.due_date = $dueDate, t.assignee_ids = $assigneeIDs, "+
				"t.attachments = $attachments",
			taskProps(t),
		)
		return nil, err
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// Delete removes a task.
func (r *Neo4jTaskRepository) Delete(ctx context.Context, id string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id}) DETACH DELETE t",
			map[string]any{"id": id},
		)
		return nil, err
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}
