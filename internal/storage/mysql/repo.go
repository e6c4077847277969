package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"listing_portal/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valInt(i int) any {
	if i == 0 {
		return nil
	}
	return i
}

func valJSON(tokens []string) any {
	if tokens == nil {
		tokens = []string{}
	}
	b, _ := json.Marshal(tokens)
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var _ domain.PropertyRepository = (*Repo)(nil)

// UpsertProperty writes the record and replaces its image list in one
// transaction.
func (r *Repo) UpsertProperty(ctx context.Context, owner string, p domain.PropertyRecord) error {
	if p.ID == "" {
		return domain.ErrEmptyID
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, upsertPropertySQL,
		p.ID.String(),
		owner,
		valStr(p.Description),
		valStr(p.Address),
		valStr(p.City),
		valStr(p.State),
		valStr(p.PostalCode),
		valStr(p.Country),
		p.Bedrooms,
		p.Bathrooms,
		p.Area,
		p.LotSize,
		valInt(p.YearBuilt),
		p.HOAFee,
		p.Taxes,
		valJSON(p.Parking),
		valJSON(p.Utilities),
		valJSON(p.Features),
	); err != nil {
		return fmt.Errorf("upsert property %s: %w", p.ID, err)
	}

	if _, err := tx.ExecContext(ctx, deleteImagesSQL, p.ID.String()); err != nil {
		return fmt.Errorf("clear images %s: %w", p.ID, err)
	}
	if len(p.Images) > 0 {
		values := make([]string, 0, len(p.Images))
		args := make([]any, 0, len(p.Images)*3)
		for i, im := range p.Images {
			values = append(values, "(?,?,?)")
			args = append(args, p.ID.String(), i, im.URL)
		}
		if _, err := tx.ExecContext(ctx, insertImagesPrefix+strings.Join(values, ","), args...); err != nil {
			return fmt.Errorf("insert images %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) PutSession(ctx context.Context, token, owner string) error {
	_, err := r.db.ExecContext(ctx, upsertSessionSQL, token, owner)
	return err
}

// OwnerForToken resolves a bearer token; unknown tokens are domain.ErrNotFound.
func (r *Repo) OwnerForToken(ctx context.Context, token string) (string, error) {
	var owner string
	if err := r.db.QueryRowContext(ctx, ownerForTokenSQL, token).Scan(&owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return owner, nil
}

func (r *Repo) ListByOwner(ctx context.Context, owner string) ([]domain.PropertyRecord, error) {
	rows, err := r.db.QueryContext(ctx, listByOwnerSQL, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.PropertyRecord{}
	idx := map[domain.PropertyID]int{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		idx[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	imgs, err := r.images(ctx, imagesByOwnerSQL, owner)
	if err != nil {
		return nil, err
	}
	for id, list := range imgs {
		if i, ok := idx[id]; ok {
			out[i].Images = list
		}
	}
	return out, nil
}

func (r *Repo) GetProperty(ctx context.Context, owner string, id domain.PropertyID) (domain.PropertyRecord, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx, getPropertySQL, id.String(), owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PropertyRecord{}, domain.ErrNotFound
		}
		return domain.PropertyRecord{}, err
	}
	imgs, err := r.images(ctx, imagesByPropertySQL, id.String())
	if err != nil {
		return domain.PropertyRecord{}, err
	}
	p.Images = imgs[p.ID]
	if p.Images == nil {
		p.Images = []domain.ImageRef{}
	}
	return p, nil
}

func (r *Repo) images(ctx context.Context, query string, arg any) (map[domain.PropertyID][]domain.ImageRef, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[domain.PropertyID][]domain.ImageRef{}
	for rows.Next() {
		var id, url string
		if err := rows.Scan(&id, &url); err != nil {
			return nil, err
		}
		pid := domain.PropertyID(id)
		out[pid] = append(out[pid], domain.ImageRef{URL: url})
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(s scanner) (domain.PropertyRecord, error) {
	var (
		p                              domain.PropertyRecord
		id                             string
		desc, addr, city, state        sql.NullString
		postal, country                sql.NullString
		beds, baths, area, lot         sql.NullFloat64
		hoa, taxes                     sql.NullFloat64
		year                           sql.NullInt64
		parking, utilities, featuresJS []byte
	)
	if err := s.Scan(
		&id, &desc, &addr, &city, &state, &postal, &country,
		&beds, &baths, &area, &lot, &year, &hoa, &taxes,
		&parking, &utilities, &featuresJS,
	); err != nil {
		return domain.PropertyRecord{}, err
	}
	p.ID = domain.PropertyID(id)
	p.Description = desc.String
	p.Address = addr.String
	p.City = city.String
	p.State = state.String
	p.PostalCode = postal.String
	p.Country = country.String
	p.Bedrooms = beds.Float64
	p.Bathrooms = baths.Float64
	p.Area = area.Float64
	p.LotSize = lot.Float64
	p.YearBuilt = int(year.Int64)
	p.HOAFee = hoa.Float64
	p.Taxes = taxes.Float64
	var err error
	if p.Parking, err = tokens("parking", parking); err != nil {
		return domain.PropertyRecord{}, fmt.Errorf("property %s: %w", id, err)
	}
	if p.Utilities, err = tokens("utilities", utilities); err != nil {
		return domain.PropertyRecord{}, fmt.Errorf("property %s: %w", id, err)
	}
	if p.Features, err = tokens("property_features", featuresJS); err != nil {
		return domain.PropertyRecord{}, fmt.Errorf("property %s: %w", id, err)
	}
	p.Images = []domain.ImageRef{}
	return p, nil
}

// tokens decodes a JSON string-array column; NULL reads as empty.
func tokens(col string, b []byte) ([]string, error) {
	out := []string{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
