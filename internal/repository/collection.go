package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"usedmarket/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const uniqueViolation = "23505"

// collection implements Collection over a table of JSONB documents.
type collection struct {
	name   string
	table  string
	store  *Store
	logger zerolog.Logger
}

// ParseID converts an opaque identifier into the store's identifier type.
func ParseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, model.ErrInvalidID
	}
	return parsed, nil
}

// ByID is the filter selecting one document by identifier.
func ByID(id string) model.Filter {
	return model.Filter{model.IDField: id}
}

// where renders a filter as a SQL predicate. Identifier matches use the id
// column; every other field is matched by JSONB containment.
func where(filter model.Filter, argOffset int) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)

	rest := make(map[string]any, len(filter))
	for k, v := range filter {
		if k != model.IDField {
			rest[k] = v
			continue
		}
		s, ok := v.(string)
		if !ok {
			return "", nil, model.ErrInvalidID
		}
		id, err := ParseID(s)
		if err != nil {
			return "", nil, err
		}
		args = append(args, id)
		clauses = append(clauses, fmt.Sprintf("id = $%d", argOffset+len(args)))
	}

	if len(rest) > 0 {
		raw, err := json.Marshal(rest)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		args = append(args, string(raw))
		clauses = append(clauses, fmt.Sprintf("doc @> $%d::jsonb", argOffset+len(args)))
	}

	if len(clauses) == 0 {
		return "TRUE", nil, nil
	}
	return strings.Join(clauses, " AND "), args, nil
}

// Find returns all matching documents in insertion order.
func (c *collection) Find(ctx context.Context, filter model.Filter, opts *FindOptions) ([]model.Document, error) {
	pred, args, err := where(filter, 0)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s WHERE %s ORDER BY created_at, id`, c.table, pred)

	rows, err := c.store.querier(ctx).Query(ctx, query, args...)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to query documents")
		return nil, fmt.Errorf("failed to query %s: %w", c.name, err)
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			c.logger.Error().Err(err).Msg("failed to scan document row")
			return nil, fmt.Errorf("failed to scan %s document: %w", c.name, err)
		}
		if opts != nil && len(opts.Projection) > 0 {
			doc = project(doc, opts.Projection)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		c.logger.Error().Err(err).Msg("error iterating document rows")
		return nil, fmt.Errorf("error iterating %s: %w", c.name, err)
	}

	return docs, nil
}

// FindOne returns the first matching document, or nil when none matches.
func (c *collection) FindOne(ctx context.Context, filter model.Filter) (model.Document, error) {
	pred, args, err := where(filter, 0)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s WHERE %s ORDER BY created_at, id LIMIT 1`, c.table, pred)

	doc, err := scanDocument(c.store.querier(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Debug().Msg("document not found")
			return nil, nil
		}
		c.logger.Error().Err(err).Msg("failed to query document")
		return nil, fmt.Errorf("failed to query %s: %w", c.name, err)
	}

	return doc, nil
}

// InsertOne stores doc under a fresh identifier. Any _id in doc is ignored.
func (c *collection) InsertOne(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	body := doc.Clone()
	delete(body, model.IDField)

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s document: %w", c.name, err)
	}

	id := uuid.New()
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, c.table)

	if _, err := c.store.querier(ctx).Exec(ctx, query, id, string(raw)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			c.logger.Debug().Str("constraint", pgErr.ConstraintName).Msg("duplicate document rejected")
			return nil, fmt.Errorf("insert into %s: %w", c.name, model.ErrDuplicate)
		}
		c.logger.Error().Err(err).Msg("failed to insert document")
		return nil, fmt.Errorf("failed to insert into %s: %w", c.name, err)
	}

	c.logger.Debug().Str("id", id.String()).Msg("document inserted")

	return &model.InsertResult{Acknowledged: true, InsertedID: id.String()}, nil
}

// UpdateOne merges set into the first matching document. A filter naming an
// invalid identifier matches nothing.
func (c *collection) UpdateOne(ctx context.Context, filter model.Filter, set model.Document) (*model.UpdateResult, error) {
	pred, args, err := where(filter, 0)
	if err != nil {
		if errors.Is(err, model.ErrInvalidID) {
			return &model.UpdateResult{Acknowledged: true}, nil
		}
		return nil, err
	}

	raw, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s update: %w", c.name, err)
	}
	args = append(args, string(raw))
	setArg := len(args)

	query := fmt.Sprintf(`
		WITH target AS (
			SELECT id, doc FROM %[1]s WHERE %[2]s ORDER BY created_at, id LIMIT 1 FOR UPDATE
		), updated AS (
			UPDATE %[1]s AS c SET doc = c.doc || $%[3]d::jsonb
			FROM target
			WHERE c.id = target.id AND NOT (target.doc @> $%[3]d::jsonb)
			RETURNING c.id
		)
		SELECT (SELECT count(*) FROM target), (SELECT count(*) FROM updated)
	`, c.table, pred, setArg)

	result := &model.UpdateResult{Acknowledged: true}
	err = c.store.querier(ctx).QueryRow(ctx, query, args...).Scan(&result.MatchedCount, &result.ModifiedCount)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("update %s: %w", c.name, model.ErrDuplicate)
		}
		c.logger.Error().Err(err).Msg("failed to update document")
		return nil, fmt.Errorf("failed to update %s: %w", c.name, err)
	}

	c.logger.Debug().
		Int64("matched", result.MatchedCount).
		Int64("modified", result.ModifiedCount).
		Msg("document updated")

	return result, nil
}

// DeleteOne removes the first matching document. A filter naming an invalid
// identifier matches nothing.
func (c *collection) DeleteOne(ctx context.Context, filter model.Filter) (*model.DeleteResult, error) {
	pred, args, err := where(filter, 0)
	if err != nil {
		if errors.Is(err, model.ErrInvalidID) {
			return &model.DeleteResult{Acknowledged: true}, nil
		}
		return nil, err
	}

	query := fmt.Sprintf(`
		DELETE FROM %[1]s
		WHERE id IN (SELECT id FROM %[1]s WHERE %[2]s ORDER BY created_at, id LIMIT 1)
	`, c.table, pred)

	tag, err := c.store.querier(ctx).Exec(ctx, query, args...)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to delete document")
		return nil, fmt.Errorf("failed to delete from %s: %w", c.name, err)
	}

	return &model.DeleteResult{Acknowledged: true, DeletedCount: tag.RowsAffected()}, nil
}

func scanDocument(row pgx.Row) (model.Document, error) {
	var (
		id  uuid.UUID
		raw []byte
	)
	if err := row.Scan(&id, &raw); err != nil {
		return nil, err
	}

	doc := model.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	doc[model.IDField] = id.String()
	return doc, nil
}

// project keeps the identifier and the named fields.
func project(doc model.Document, fields []string) model.Document {
	out := model.Document{model.IDField: doc[model.IDField]}
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	return out
}
