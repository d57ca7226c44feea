package usecases

import (
	"context"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"gisteam.backend/internal/domain/repositories"
	"gisteam.backend/pkg/logger"
)

// CollectionAudit reports on one collection. Duplicates maps a natural key
// to how many records carry it, for keys held more than once.
type CollectionAudit struct {
	Stats           *repositories.ScanStats `json:"stats,omitempty"`
	Records         int                     `json:"records"`
	Duplicates      map[string]int          `json:"duplicates,omitempty"`
	UnknownCreators int                     `json:"unknown_creators"`
}

// AuditReport is read-only; nothing is modified while producing it.
type AuditReport struct {
	Accounts        CollectionAudit `json:"accounts"`
	Projects        CollectionAudit `json:"projects"`
	Gallery         CollectionAudit `json:"gallery"`
	TeamMembers     CollectionAudit `json:"team_members"`
	ContactMessages CollectionAudit `json:"contact_messages"`
}

// Clean reports whether the audit found nothing to act on.
func (r *AuditReport) Clean() bool {
	for _, c := range []CollectionAudit{r.Accounts, r.Projects, r.Gallery, r.TeamMembers, r.ContactMessages} {
		if len(c.Duplicates) > 0 || c.UnknownCreators > 0 {
			return false
		}
		if c.Stats != nil && len(c.Stats.Malformed) > 0 {
			return false
		}
	}
	return true
}

// AuditUsecase checks stored data for the inconsistencies the store allows:
// undecodable documents, duplicate natural keys and created_by values that
// point at accounts that no longer exist.
type AuditUsecase struct {
	accounts repositories.AccountRepository
	projects repositories.ProjectRepository
	gallery  repositories.GalleryRepository
	members  repositories.TeamMemberRepository
	messages repositories.ContactMessageRepository
}

func NewAuditUsecase(
	accounts repositories.AccountRepository,
	projects repositories.ProjectRepository,
	gallery repositories.GalleryRepository,
	members repositories.TeamMemberRepository,
	messages repositories.ContactMessageRepository,
) *AuditUsecase {
	return &AuditUsecase{accounts: accounts, projects: projects, gallery: gallery, members: members, messages: messages}
}

func (u *AuditUsecase) Run(ctx context.Context) (*AuditReport, error) {
	report := &AuditReport{}

	accounts, err := u.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(accounts))
	usernames := make([]string, 0, len(accounts))
	emails := make([]string, 0, len(accounts))
	for _, a := range accounts {
		known[a.ID.String()] = true
		usernames = append(usernames, "username:"+a.Username)
		emails = append(emails, "email:"+a.Email)
	}
	report.Accounts = CollectionAudit{Records: len(accounts), Duplicates: duplicates(append(usernames, emails...))}

	projects, err := u.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(projects))
	creators := make([]null.String, 0, len(projects))
	for _, p := range projects {
		titles = append(titles, p.Title)
		creators = append(creators, p.CreatedBy)
	}
	report.Projects = CollectionAudit{Records: len(projects), Duplicates: duplicates(titles), UnknownCreators: unknown(creators, known)}

	items, err := u.gallery.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	titles, creators = titles[:0], creators[:0]
	for _, g := range items {
		titles = append(titles, g.Title)
		creators = append(creators, g.CreatedBy)
	}
	report.Gallery = CollectionAudit{Records: len(items), Duplicates: duplicates(titles), UnknownCreators: unknown(creators, known)}

	members, err := u.members.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(members))
	creators = creators[:0]
	for _, m := range members {
		names = append(names, m.Name)
		creators = append(creators, m.CreatedBy)
	}
	report.TeamMembers = CollectionAudit{Records: len(members), Duplicates: duplicates(names), UnknownCreators: unknown(creators, known)}

	messages, err := u.messages.List(ctx)
	if err != nil {
		return nil, err
	}
	creators = creators[:0]
	for _, m := range messages {
		creators = append(creators, m.UserID)
	}
	report.ContactMessages = CollectionAudit{Records: len(messages), UnknownCreators: unknown(creators, known)}

	for _, c := range []struct {
		repo any
		dst  *CollectionAudit
	}{
		{u.accounts, &report.Accounts},
		{u.projects, &report.Projects},
		{u.gallery, &report.Gallery},
		{u.members, &report.TeamMembers},
		{u.messages, &report.ContactMessages},
	} {
		a, ok := c.repo.(repositories.Auditable)
		if !ok {
			continue
		}
		stats, err := a.Audit(ctx)
		if err != nil {
			return nil, err
		}
		c.dst.Stats = stats
	}

	logger.Info(ctx, "Audit finished", zap.Bool("clean", report.Clean()))
	return report, nil
}

func duplicates(keys []string) map[string]int {
	counts := make(map[string]int, len(keys))
	for _, k := range keys {
		counts[k]++
	}
	out := make(map[string]int)
	for k, n := range counts {
		if n > 1 {
			out[k] = n
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// unknown counts set references to accounts that are not stored. Readers
// show these as an unknown creator.
func unknown(refs []null.String, known map[string]bool) int {
	n := 0
	for _, r := range refs {
		if r.Valid && r.String != "" && !known[r.String] {
			n++
		}
	}
	return n
}
