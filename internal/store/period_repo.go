package store

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"taskan/internal/models"
)

const periodReturn = "RETURN per.id AS id, per.title AS title, per.position AS position, " +
	"p.id AS project_id, per.created_at AS created_at"

// Neo4jPeriodRepository stores periods as Period nodes linked to their
// project by an IN_PROJECT relationship.
type Neo4jPeriodRepository struct {
	driver neo4j.DriverWithContext
}

// NewPeriodRepository creates a period repository on driver.
func NewPeriodRepository(driver neo4j.DriverWithContext) *Neo4jPeriodRepository {
	return &Neo4jPeriodRepository{driver: driver}
}

func decodePeriod(values []any) models.Period {
	return models.Period{
		ID:        strVal(values[0]),
		Title:     strVal(values[1]),
		Position:  intVal(values[2]),
		ProjectID: strVal(values[3]),
		CreatedAt: timeVal(values[4]),
	}
}

// FindByParent lists a project's periods ordered by position; ties fall
// back to creation time so the order is deterministic.
func (r *Neo4jPeriodRepository) FindByParent(ctx context.Context, projectID string) ([]models.Period, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (per:Period)-[:IN_PROJECT]->(p:Project {id: $projectID}) "+
				periodReturn+" ORDER BY per.position ASC, per.created_at ASC",
			map[string]any{"projectID": projectID},
		)
		if err != nil {
			return nil, err
		}

		var periods []models.Period
		for res.Next(ctx) {
			periods = append(periods, decodePeriod(res.Record().Values))
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return periods, nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return result.([]models.Period), nil
}

// FindByID fetches one period, including its project id for access checks.
func (r *Neo4jPeriodRepository) FindByID(ctx context.Context, id string) (*models.Period, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (per:Period {id: $id})-[:IN_PROJECT]->(p:Project) "+periodReturn,
			map[string]any{"id": id},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			per := decodePeriod(res.Record().Values)
			return &per, nil
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
	return result.(*models.Period), nil
}

// Create links a new period to its project. A missing project yields
// ErrNotFound.
func (r *Neo4jPeriodRepository) Create(ctx context.Context, p *models.Period) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (proj:Project {id: $projectID}) "+
				"CREATE (per:Period {id: $id, title: $title, position: $position, created_at: $createdAt})-[:IN_PROJECT]->(proj) "+
				"RETURN per.id",
			map[string]any{
				"projectID": p.ProjectID,
				"id":        p.ID,
				"title":     p.Title,
				"position":  p.Position,
				"createdAt": timeProp(p.CreatedAt),
			},
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

// Update rewrites title and position.
func (r *Neo4jPeriodRepository) Update(ctx context.Context, id, title string, position int) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (per:Period {id: $id}) SET per.title = $title, per.position = $position",
			map[string]any{"id": id, "title": title, "position": position},
		)
		return nil, err
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// Delete removes a period and cascades to its tasks.
func (r *Neo4jPeriodRepository) Delete(ctx context.Context, id string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (per:Period {id: $id}) "+
				"OPTIONAL MATCH (t:Task)-[:IN_PERIOD]->(per) "+
				"DETACH DELETE t, per",
			map[string]any{"id": id},
		)
		return nil, err
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}
