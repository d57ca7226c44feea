package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gisteam.backend/internal/domain/entities"
	"gisteam.backend/internal/domain/repositories"
	"gisteam.backend/pkg/logger"
)

// ReconcileFailure is a duplicate that could not be deleted.
type ReconcileFailure struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}

// ReconcileGroup describes one natural key that had duplicates.
type ReconcileGroup struct {
	Key        string      `json:"key"`
	RetainedID uuid.UUID   `json:"retained_id"`
	DeletedIDs []uuid.UUID `json:"deleted_ids"`
	// AbsentIDs were listed but already gone when the delete ran.
	AbsentIDs []uuid.UUID        `json:"absent_ids,omitempty"`
	Failed    []ReconcileFailure `json:"failed,omitempty"`
}

// ReconcileReport is the outcome of one reconciler pass.
type ReconcileReport struct {
	Entity  string           `json:"entity"`
	KeyName string           `json:"key_name"`
	Scanned int              `json:"scanned"`
	DryRun  bool             `json:"dry_run"`
	Groups  []ReconcileGroup `json:"groups"`
}

func (r *ReconcileReport) DeletedCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.DeletedIDs)
	}
	return n
}

func (r *ReconcileReport) AbsentCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.AbsentIDs)
	}
	return n
}

func (r *ReconcileReport) FailedCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Failed)
	}
	return n
}

// Reconciler collapses records of one type that share a natural key down to
// the most recently updated one. A pass is idempotent: running it again
// after a partial failure derives the groups from the current state.
type Reconciler[T any] struct {
	entity    string
	keyName   string
	list      func(ctx context.Context) ([]T, error)
	purge     func(ctx context.Context, id uuid.UUID) (bool, error)
	key       func(T) string
	id        func(T) uuid.UUID
	updatedAt func(T) time.Time
	skipEmpty bool
}

// Run lists the collection, groups by key and purges every record but the
// newest in each group. A failed purge is recorded and the pass continues.
// With dryRun nothing is deleted and DeletedIDs lists what would be.
// The empty key groups like any other unless the reconciler skips it.
func (r *Reconciler[T]) Run(ctx context.Context, dryRun bool) (*ReconcileReport, error) {
	records, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]T)
	for _, rec := range records {
		k := r.key(rec)
		if k == "" && r.skipEmpty {
			continue
		}
		groups[k] = append(groups[k], rec)
	}

	keys := make([]string, 0, len(groups))
	for k, members := range groups {
		if len(members) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	report := &ReconcileReport{Entity: r.entity, KeyName: r.keyName, Scanned: len(records), DryRun: dryRun}
	for _, k := range keys {
		members := groups[k]
		// Equal updated_at values keep no particular order.
		sort.SliceStable(members, func(i, j int) bool {
			return r.updatedAt(members[i]).After(r.updatedAt(members[j]))
		})

		group := ReconcileGroup{Key: k, RetainedID: r.id(members[0])}
		for _, loser := range members[1:] {
			id := r.id(loser)
			if dryRun {
				group.DeletedIDs = append(group.DeletedIDs, id)
				continue
			}
			existed, err := r.purge(ctx, id)
			if err != nil {
				logger.Warn(ctx, "Failed to delete duplicate",
					zap.String("entity", r.entity),
					zap.String("id", id.String()),
					zap.Error(err),
				)
				group.Failed = append(group.Failed, ReconcileFailure{ID: id, Error: err.Error()})
				continue
			}
			if !existed {
				group.AbsentIDs = append(group.AbsentIDs, id)
				continue
			}
			group.DeletedIDs = append(group.DeletedIDs, id)
		}
		report.Groups = append(report.Groups, group)
	}

	logger.Info(ctx, "Reconcile pass finished",
		zap.String("entity", r.entity),
		zap.String("key", r.keyName),
		zap.Int("scanned", report.Scanned),
		zap.Int("groups", len(report.Groups)),
		zap.Int("deleted", report.DeletedCount()),
		zap.Int("failed", report.FailedCount()),
		zap.Int("absent", report.AbsentCount()),
		zap.Bool("dry_run", dryRun),
	)
	return report, nil
}

// NewTeamMemberReconciler deduplicates team members by name.
func NewTeamMemberReconciler(repo repositories.TeamMemberRepository) *Reconciler[*entities.TeamMember] {
	return &Reconciler[*entities.TeamMember]{
		entity:    "team_member",
		keyName:   "name",
		list:      repo.List,
		purge:     repo.Purge,
		key:       func(m *entities.TeamMember) string { return m.Name },
		id:        func(m *entities.TeamMember) uuid.UUID { return m.ID },
		updatedAt: func(m *entities.TeamMember) time.Time { return m.UpdatedAt },
	}
}

// NewAccountReconciler deduplicates accounts on username or email, the two
// keys the uniqueness guard protects. Accounts without a value for the key
// are left alone.
func NewAccountReconciler(repo repositories.AccountRepository, keyName string) *Reconciler[*entities.Account] {
	key := func(a *entities.Account) string { return a.Username }
	if keyName == "email" {
		key = func(a *entities.Account) string { return a.Email }
	} else {
		keyName = "username"
	}
	return &Reconciler[*entities.Account]{
		entity:    "account",
		keyName:   keyName,
		list:      repo.List,
		purge:     repo.Purge,
		key:       key,
		id:        func(a *entities.Account) uuid.UUID { return a.ID },
		updatedAt: func(a *entities.Account) time.Time { return a.UpdatedAt },
		skipEmpty: true,
	}
}

// ReconcileRunner is what the periodic job and the admin surfaces call.
type ReconcileRunner interface {
	Run(ctx context.Context, dryRun bool) (*ReconcileReport, error)
}

// ReconcileUsecase runs every configured reconciler in order: team members
// by name, then accounts by username and by email.
type ReconcileUsecase struct {
	runners []ReconcileRunner
}

func NewReconcileUsecase(runners ...ReconcileRunner) *ReconcileUsecase {
	return &ReconcileUsecase{runners: runners}
}

// NewDefaultReconcileUsecase wires the reconcilers for every natural key.
func NewDefaultReconcileUsecase(members repositories.TeamMemberRepository, accounts repositories.AccountRepository) *ReconcileUsecase {
	return NewReconcileUsecase(
		NewTeamMemberReconciler(members),
		NewAccountReconciler(accounts, "username"),
		NewAccountReconciler(accounts, "email"),
	)
}

// RunAll returns the reports gathered so far and stops at the first runner
// that cannot list its collection.
func (u *ReconcileUsecase) RunAll(ctx context.Context, dryRun bool) ([]*ReconcileReport, error) {
	reports := make([]*ReconcileReport, 0, len(u.runners))
	for _, r := range u.runners {
		report, err := r.Run(ctx, dryRun)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
