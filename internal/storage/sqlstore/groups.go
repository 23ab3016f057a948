package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/biteswipe/internal/models"
	"github.com/mmynk/biteswipe/internal/storage"
)

const selectGroup = `
	SELECT id, name, code, creator_id, matched_restaurant_id, created_at, expires_at, version
	FROM groups`

// CreateGroup persists a new group and its creator's membership.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now()
	}
	group.Version = 1

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO groups (id, name, code, creator_id, created_at, expires_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		group.ID, group.Name, group.Code, group.CreatorID,
		group.CreatedAt.Unix(), group.ExpiresAt.Unix(), group.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("group code %s: %w", group.Code, storage.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.q(
		"INSERT INTO group_members (group_id, user_id, seq) VALUES (?, ?, ?)"),
		group.ID, group.CreatorID, group.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	group.Members = []string{group.CreatorID}
	if group.Preferences == nil {
		group.Preferences = make(map[string][]string)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.loadGroup(ctx, selectGroup+" WHERE id = ?", groupID)
}

// GetGroupByCode retrieves a group by its join code.
func (s *Store) GetGroupByCode(ctx context.Context, code string) (*models.Group, error) {
	return s.loadGroup(ctx, selectGroup+" WHERE code = ?", code)
}

// loadGroup reads the group row, members and preferences in one transaction
// so the membership and the votes always describe the same moment.
func (s *Store) loadGroup(ctx context.Context, query string, arg string) (*models.Group, error) {
	tx, err := s.db.BeginTx(ctx, s.dialect.snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	group := &models.Group{Preferences: make(map[string][]string)}
	var matched sql.NullString
	var createdAt, expiresAt int64
	err = tx.QueryRowContext(ctx, s.q(query), arg).Scan(
		&group.ID, &group.Name, &group.Code, &group.CreatorID,
		&matched, &createdAt, &expiresAt, &group.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", arg, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	group.MatchedRestaurantID = matched.String
	group.CreatedAt = time.Unix(createdAt, 0).UTC()
	group.ExpiresAt = time.Unix(expiresAt, 0).UTC()

	// Get members in join order
	rows, err := tx.QueryContext(ctx, s.q(
		"SELECT user_id FROM group_members WHERE group_id = ? ORDER BY seq"),
		group.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		group.Members = append(group.Members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	// Get preferences
	prefRows, err := tx.QueryContext(ctx, s.q(
		"SELECT user_id, liked FROM group_preferences WHERE group_id = ?"),
		group.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	defer prefRows.Close()

	for prefRows.Next() {
		var userID, raw string
		if err := prefRows.Scan(&userID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan preferences: %w", err)
		}
		liked := []string{}
		if err := json.Unmarshal([]byte(raw), &liked); err != nil {
			return nil, fmt.Errorf("failed to decode preferences of %s: %w", userID, err)
		}
		group.Preferences[userID] = liked
	}
	if err := prefRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preferences: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return group, nil
}

// ListGroupsByMember retrieves every group userID belongs to, newest first.
func (s *Store) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT g.id FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY g.created_at DESC, g.id`),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups by member: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted since the listing query
			continue
		}
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// CodeExists reports whether a group already uses code.
func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, s.q("SELECT COUNT(1) FROM groups WHERE code = ?"), code).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check group code: %w", err)
	}
	return count > 0, nil
}

// AddMember appends a member. The new group version doubles as the join
// sequence number, which keeps members ordered by join time.
func (s *Store) AddMember(ctx context.Context, groupID, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var version int64
	err = tx.QueryRowContext(ctx, s.q(
		"UPDATE groups SET version = version + 1 WHERE id = ? RETURNING version"),
		groupID,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to bump group version: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.q(
		"INSERT INTO group_members (group_id, user_id, seq) VALUES (?, ?, ?)"),
		groupID, userID, version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("member %s: %w", userID, storage.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveMember removes a member and its preferences, and sets the creator,
// if the group is still at expectedVersion.
func (s *Store) RemoveMember(ctx context.Context, groupID, userID, creatorID string, expectedVersion int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.q(
		"UPDATE groups SET creator_id = ?, version = version + 1 WHERE id = ? AND version = ?"),
		creatorID, groupID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	if err := s.checkSwapped(ctx, tx, res, groupID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, s.q(
		"DELETE FROM group_preferences WHERE group_id = ? AND user_id = ?"),
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete preferences: %w", err)
	}

	res, err = tx.ExecContext(ctx, s.q(
		"DELETE FROM group_members WHERE group_id = ? AND user_id = ?"),
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	} else if n == 0 {
		return fmt.Errorf("member %s: %w", userID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteGroup removes a group and everything under it if the group is still
// at expectedVersion.
func (s *Store) DeleteGroup(ctx context.Context, groupID string, expectedVersion int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.q(
		"DELETE FROM groups WHERE id = ? AND version = ?"),
		groupID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if err := s.checkSwapped(ctx, tx, res, groupID); err != nil {
		return err
	}

	// Foreign keys cascade; these only matter if enforcement is off.
	for _, stmt := range []string{
		"DELETE FROM group_preferences WHERE group_id = ?",
		"DELETE FROM group_members WHERE group_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, s.q(stmt), groupID); err != nil {
			return fmt.Errorf("failed to delete group rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// checkSwapped turns a zero-row compare-and-swap into ErrVersionConflict, or
// ErrNotFound when the group no longer exists.
func (s *Store) checkSwapped(ctx context.Context, tx *sql.Tx, res sql.Result, groupID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var count int
	if err := tx.QueryRowContext(ctx, s.q("SELECT COUNT(1) FROM groups WHERE id = ?"), groupID).Scan(&count); err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return fmt.Errorf("group %s: %w", groupID, storage.ErrVersionConflict)
}

// SetPreferences overwrites one member's liked list. The membership check
// and the write are a single statement.
func (s *Store) SetPreferences(ctx context.Context, groupID, userID string, liked []string) error {
	if liked == nil {
		liked = []string{}
	}
	raw, err := json.Marshal(liked)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	res, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO group_preferences (group_id, user_id, liked)
		SELECT CAST(? AS TEXT), CAST(? AS TEXT), CAST(? AS TEXT)
		WHERE EXISTS (SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?)
		ON CONFLICT (group_id, user_id) DO UPDATE SET liked = excluded.liked`),
		groupID, userID, string(raw), groupID, userID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("member %s: %w", userID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("member %s: %w", userID, storage.ErrNotFound)
	}
	return nil
}

// SetMatchIfUnset writes the match only if none is recorded yet.
func (s *Store) SetMatchIfUnset(ctx context.Context, groupID, restaurantID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(
		"UPDATE groups SET matched_restaurant_id = ? WHERE id = ? AND matched_restaurant_id IS NULL"),
		restaurantID, groupID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to set match: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// DeleteExpiredGroups removes every group that expired before now.
func (s *Store) DeleteExpiredGroups(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.q("DELETE FROM groups WHERE expires_at < ?"), now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired groups: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
