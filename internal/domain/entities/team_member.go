package entities

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MemberType is the team member category.
type MemberType string

const (
	MemberTypeBoard  MemberType = "board"
	MemberTypeAlumni MemberType = "alumni"
)

// Valid reports whether t is a known category.
func (t MemberType) Valid() bool {
	return t == MemberTypeBoard || t == MemberTypeAlumni
}

// TeamMember has no active flag; deletion is physical.
type TeamMember struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	LinkedInURL null.String `json:"linkedin_url"`
	MemberType  MemberType  `json:"member_type"`
	Year        null.String `json:"year"`
	CreatedBy   null.String `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type TeamMemberPatch struct {
	Name        Optional[string]
	Title       Optional[string]
	Description Optional[string]
	LinkedInURL Optional[null.String]
	MemberType  Optional[MemberType]
	Year        Optional[null.String]
}

func (p TeamMemberPatch) Apply(m *TeamMember) bool {
	changed := p.Name.Apply(&m.Name)
	changed = p.Title.Apply(&m.Title) || changed
	changed = p.Description.Apply(&m.Description) || changed
	changed = p.LinkedInURL.Apply(&m.LinkedInURL) || changed
	changed = p.MemberType.Apply(&m.MemberType) || changed
	changed = p.Year.Apply(&m.Year) || changed
	return changed
}

// SortTeamMembers orders board members before alumni, each group by name.
// Unknown categories sort after alumni.
func SortTeamMembers(members []*TeamMember) {
	sort.SliceStable(members, func(i, j int) bool {
		ri, rj := memberTypeRank(members[i].MemberType), memberTypeRank(members[j].MemberType)
		if ri != rj {
			return ri < rj
		}
		return members[i].Name < members[j].Name
	})
}

func memberTypeRank(t MemberType) int {
	switch t {
	case MemberTypeBoard:
		return 0
	case MemberTypeAlumni:
		return 1
	default:
		return 2
	}
}
