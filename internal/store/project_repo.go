package store

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"taskan/internal/models"
)

const projectReturn = "RETURN p.id AS id, p.name AS name, p.description AS description, " +
	"p.owner_id AS owner_id, p.members AS members, p.created_at AS created_at"

// Neo4jProjectRepository stores projects as Project nodes. Membership
// lives in a members list property on the node, so member queries are a
// list containment check.
type Neo4jProjectRepository struct {
	driver neo4j.DriverWithContext
}

// NewProjectRepository creates a project repository on driver.
func NewProjectRepository(driver neo4j.DriverWithContext) *Neo4jProjectRepository {
	return &Neo4jProjectRepository{driver: driver}
}

func decodeProject(values []any) models.Project {
	return models.Project{
		ID:          strVal(values[0]),
		Name:        strVal(values[1]),
		Description: strVal(values[2]),
		OwnerID:     strVal(values[3]),
		Members:     strListVal(values[4]),
		CreatedAt:   timeVal(values[5]),
	}
}

// FindByMember lists every project whose members contain userID. The
// result is shallow: periods are not populated.
func (r *Neo4jProjectRepository) FindByMember(ctx context.Context, userID string) ([]models.Project, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (p:Project) WHERE $userID IN p.members "+
				projectReturn+" ORDER BY p.created_at",
			map[string]any{"userID": userID},
		)
		if err != nil {
			return nil, err
		}

		var projects []models.Project
		for res.Next(ctx) {
			projects = append(projects, decodeProject(res.Record().Values))
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return projects, nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return result.([]models.Project), nil
}

// FindByID fetches a single project, shallow.
func (r *Neo4jProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (p:Project {id: $id}) "+projectReturn,
			map[string]any{"id": id},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			p := decodeProject(res.Record().Values)
			return &p, nil
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
	return result.(*models.Project), nil
}

// Create stores a new project. The owner is always written into the
// members list, whatever the caller passed.
func (r *Neo4jProjectRepository) Create(ctx context.Context, p *models.Project) error {
	members := p.Members
	if !contains(members, p.OwnerID) {
		members = append([]string{p.OwnerID}, members...)
	}
	p.Members = members

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"CREATE (p:Project {id: $id, name: $name, description: $description, "+
				"owner_id: $ownerID, members: $members, created_at: $createdAt})",
			map[string]any{
				"id":          p.ID,
				"name":        p.Name,
				"description": p.Description,
				"ownerID":     p.OwnerID,
				"members":     members,
				"createdAt":   timeProp(p.CreatedAt),
			},
		)
		return nil, err
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// Update rewrites name and description and returns the updated project.
func (r *Neo4jProjectRepository) Update(ctx context.Context, id, name, description string) (*models.Project, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (p:Project {id: $id}) "+
				"SET p.name = $name, p.description = $description "+
				projectReturn,
			map[string]any{"id": id, "name": name, "description": description},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			p := decodeProject(res.Record().Values)
			return &p, nil
		}
		return nil, res.Err()
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if result == nil {
		return nil, models.ErrNotFound
	}
	return result.(*models.Project), nil
}

// UpdateMembers replaces the member list. The owner is forcibly retained.
func (r *Neo4jProjectRepository) UpdateMembers(ctx context.Context, id string, members []string) (*models.Project, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !contains(members, current.OwnerID) {
		members = append([]string{current.OwnerID}, members...)
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (p:Project {id: $id}) SET p.members = $members "+projectReturn,
			map[string]any{"id": id, "members": members},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			p := decodeProject(res.Record().Values)
			return &p, nil
		}
		return nil, res.Err()
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if result == nil {
		return nil, models.ErrNotFound
	}
	return result.(*models.Project), nil
}

// Delete removes a project and cascades to its periods and tasks.
func (r *Neo4jProjectRepository) Delete(ctx context.Context, id string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (p:Project {id: $id}) "+
				"OPTIONAL MATCH (per:Period)-[:IN_PROJECT]->(p) "+
				"OPTIONAL MATCH (t:Task)-[:IN_PERIOD]->(per) "+
				"DETACH DELETE t, per, p",
			map[string]any{"id": id},
		)
		return nil, err
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
