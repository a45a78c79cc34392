package store

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"taskan/internal/models"
)

const userReturn = "RETURN u.id AS id, u.name AS name, u.email AS email, u.password_hash AS password_hash"

// Neo4jUserRepository stores accounts as User nodes keyed by id, with a
// unique email per account.
type Neo4jUserRepository struct {
	driver neo4j.DriverWithContext
}

// NewUserRepository creates a user repository on driver.
func NewUserRepository(driver neo4j.DriverWithContext) *Neo4jUserRepository {
	return &Neo4jUserRepository{driver: driver}
}

func decodeUser(values []any) (models.User, string) {
	return models.User{
		ID:    strVal(values[0]),
		Name:  strVal(values[1]),
		Email: strVal(values[2]),
	}, strVal(values[3])
}

// Create stores a new account. An already-registered email yields
// ErrValidation.
func (r *Neo4jUserRepository) Create(ctx context.Context, u *models.User, passwordHash string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (existing:User {email: $email}) RETURN existing.id",
			map[string]any{"email": u.Email},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return false, nil
		}
		if err := res.Err(); err != nil {
			return nil, err
		}

		_, err = tx.Run(ctx,
			"CREATE (u:User {id: $id, name: $name, email: $email, password_hash: $passwordHash})",
			map[string]any{
				"id":           u.ID,
				"name":         u.Name,
				"email":        u.Email,
				"passwordHash": passwordHash,
			},
		)
		return true, err
	})
	if err != nil {
		return storeErr(err)
	}
	if result != true {
		return models.ErrValidation
	}
	return nil
}

// FindByEmail fetches an account and its password hash for credential
// checks.
func (r *Neo4jUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	type row struct {
		user models.User
		hash string
	}
	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (u:User {email: $email}) "+userReturn,
			map[string]any{"email": email},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			user, hash := decodeUser(res.Record().Values)
			return &row{user: user, hash: hash}, nil
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, "", storeErr(err)
	}
	if result == nil {
		return nil, "", models.ErrNotFound
	}
	found := result.(*row)
	return &found.user, found.hash, nil
}

// FindByID fetches one account without its password hash.
func (r *Neo4jUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (u:User {id: $id}) "+userReturn,
			map[string]any{"id": id},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			user, _ := decodeUser(res.Record().Values)
			return &user, nil
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
	return result.(*models.User), nil
}

// FindByIDs fetches the accounts for ids, used to hydrate assignee stubs.
// Unknown ids are silently skipped.
func (r *Neo4jUserRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (u:User) WHERE u.id IN $ids "+userReturn,
			map[string]any{"ids": ids},
		)
		if err != nil {
			return nil, err
		}

		var users []models.User
		for res.Next(ctx) {
			user, _ := decodeUser(res.Record().Values)
			users = append(users, user)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return users, nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return result.([]models.User), nil
}
