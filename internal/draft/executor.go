// ABOUTME: Commits validated drafts to the store in a single transaction.
// ABOUTME: Re-checks references in-tx so stale drafts fail atomically.
package draft

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
)

// ErrStaleReference means a reference that validated earlier no longer
// exists at commit time. The transaction is rolled back; nothing was
// written.
var ErrStaleReference = errors.New("draft references data that no longer exists")

// Executor turns validated drafts into committed rows. It needs the
// concrete store rather than the Repository interface because draft
// execution composes transaction primitives.
type Executor struct {
	db *storage.DB
}

// NewExecutor creates an executor over an open store.
func NewExecutor(db *storage.DB) *Executor {
	return &Executor{db: db}
}

// ExecuteResult reports what was created.
type ExecuteResult struct {
	Kind       Kind
	SessionID  int64
	TemplateID int64
	SpaceID    int64
	SpaceName  string
}

// Execute commits a draft that already passed validation. The caller is
// expected to pass the validator's Normalized draft; raw drafts are
// rejected by the same in-transaction checks.
func (ex *Executor) Execute(d *Draft) (*ExecuteResult, error) {
	switch d.Kind {
	case KindCreateWorkout:
		return ex.createWorkout(d)
	case KindCreateTemplate:
		return ex.createTemplate(d)
	case KindCreateGym:
		return ex.createGym(d)
	default:
		return nil, fmt.Errorf("unknown draft kind: %q", d.Kind)
	}
}

func (ex *Executor) createWorkout(d *Draft) (*ExecuteResult, error) {
	w := d.Workout
	if w == nil || len(w.Exercises) == 0 {
		return nil, fmt.Errorf("workout draft has no exercises")
	}

	var sessionID int64
	err := ex.db.WithTx(func(tx *storage.Tx) error {
		if err := checkEntryRefs(tx, w.Exercises); err != nil {
			return err
		}
		if w.SpaceID != nil {
			ok, err := tx.SpaceExists(*w.SpaceID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("gym %d: %w", *w.SpaceID, ErrStaleReference)
			}
		}
		if w.TemplateID != nil {
			ok, err := tx.TemplateExists(*w.TemplateID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("template %d: %w", *w.TemplateID, ErrStaleReference)
			}
		}

		session := &models.Session{
			StartedAt:  time.Now(),
			TemplateID: w.TemplateID,
			SpaceID:    w.SpaceID,
		}
		if note := strings.TrimSpace(w.Note); note != "" {
			session.Note = &note
		}
		id, err := tx.InsertSession(session)
		if err != nil {
			return err
		}
		sessionID = id

		for order, entry := range w.Exercises {
			item := &models.SessionItem{
				SessionID:   sessionID,
				ExerciseID:  entry.ExerciseID,
				SortOrder:   order,
				TargetSets:  len(entry.Sets),
				TargetReps:  targetReps(entry.Sets),
				RestSeconds: entry.RestSeconds,
			}
			if notes := strings.TrimSpace(entry.Notes); notes != "" {
				item.Notes = &notes
			}
			itemID, err := tx.InsertSessionItem(item)
			if err != nil {
				return err
			}
			for i, set := range entry.Sets {
				row := &models.SessionSet{
					ItemID:    itemID,
					SetNumber: i + 1,
					Reps:      string(set.Reps),
					IsWarmup:  set.IsWarmup,
				}
				if set.Weight != nil {
					w := float64(*set.Weight)
					row.Weight = &w
				}
				if _, err := tx.InsertSessionSet(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ExecuteResult{Kind: KindCreateWorkout, SessionID: sessionID}, nil
}

func (ex *Executor) createTemplate(d *Draft) (*ExecuteResult, error) {
	t := d.Template
	if t == nil || len(t.Exercises) == 0 {
		return nil, fmt.Errorf("template draft has no exercises")
	}

	var templateID int64
	err := ex.db.WithTx(func(tx *storage.Tx) error {
		if err := checkEntryRefs(tx, t.Exercises); err != nil {
			return err
		}
		if t.SpaceID != nil {
			ok, err := tx.SpaceExists(*t.SpaceID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("gym %d: %w", *t.SpaceID, ErrStaleReference)
			}
		}

		now := time.Now()
		id, err := tx.InsertTemplate(&models.Template{
			Name:      strings.TrimSpace(t.Name),
			SpaceID:   t.SpaceID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		templateID = id

		for order, entry := range t.Exercises {
			item := &models.TemplateItem{
				TemplateID: templateID,
				ExerciseID: entry.ExerciseID,
				SortOrder:  order,
				TargetSets: len(entry.Sets),
				TargetReps: targetReps(entry.Sets),
			}
			if notes := strings.TrimSpace(entry.Notes); notes != "" {
				item.Notes = &notes
			}
			if _, err := tx.InsertTemplateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ExecuteResult{Kind: KindCreateTemplate, TemplateID: templateID}, nil
}

func (ex *Executor) createGym(d *Draft) (*ExecuteResult, error) {
	g := d.Gym
	if g == nil || strings.TrimSpace(g.Name) == "" {
		return nil, fmt.Errorf("gym draft has no name")
	}

	equipment := make([]string, 0, len(g.EquipmentIDs))
	for _, id := range g.EquipmentIDs {
		if storage.ValidEquipmentID(id) {
			equipment = append(equipment, id)
		}
	}

	var spaceID int64
	var spaceName string
	err := ex.db.WithTx(func(tx *storage.Tx) error {
		// Probe for a free name inside the transaction: the snapshot the
		// validator used may be stale by now.
		base := strings.TrimSpace(g.Name)
		name := base
		for n := 2; ; n++ {
			taken, err := tx.SpaceNameTaken(name)
			if err != nil {
				return err
			}
			if !taken {
				break
			}
			name = fmt.Sprintf("%s (%d)", base, n)
		}

		space := &models.WorkoutSpace{
			Name:         name,
			Description:  strings.TrimSpace(g.Description),
			EquipmentIDs: equipment,
			IsDefault:    g.IsDefault,
			IsTemporary:  g.IsTemporary,
			CreatedAt:    time.Now(),
		}
		if g.IsTemporary {
			expires := time.Now().Add(24 * time.Hour)
			space.ExpiresAt = &expires
		}

		id, err := tx.InsertSpace(space)
		if err != nil {
			return err
		}
		if g.IsDefault {
			if err := tx.ClearDefaultSpaces(id); err != nil {
				return err
			}
		}
		spaceID = id
		spaceName = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ExecuteResult{Kind: KindCreateGym, SpaceID: spaceID, SpaceName: spaceName}, nil
}

// checkEntryRefs verifies every exercise id inside the transaction.
func checkEntryRefs(tx *storage.Tx, entries []ExerciseEntry) error {
	for _, e := range entries {
		ok, err := tx.ExerciseExists(e.ExerciseID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("exercise %d: %w", e.ExerciseID, ErrStaleReference)
		}
	}
	return nil
}

// targetReps derives the item-level rep target from the first set.
func targetReps(sets []SetEntry) string {
	if len(sets) == 0 {
		return ""
	}
	return string(sets[0].Reps)
}
