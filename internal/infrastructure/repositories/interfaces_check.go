package repositories

import domainrepos "gisteam.backend/internal/domain/repositories"

var (
	_ domainrepos.AccountRepository        = (*AccountRepository)(nil)
	_ domainrepos.ProjectRepository        = (*ProjectRepository)(nil)
	_ domainrepos.GalleryRepository        = (*GalleryRepository)(nil)
	_ domainrepos.TeamMemberRepository     = (*TeamMemberRepository)(nil)
	_ domainrepos.ContactMessageRepository = (*ContactMessageRepository)(nil)

	_ domainrepos.Auditable = (*AccountRepository)(nil)
	_ domainrepos.Auditable = (*ProjectRepository)(nil)
	_ domainrepos.Auditable = (*GalleryRepository)(nil)
	_ domainrepos.Auditable = (*TeamMemberRepository)(nil)
	_ domainrepos.Auditable = (*ContactMessageRepository)(nil)

	_ domainrepos.ListAwaiter = (*AccountRepository)(nil)
	_ domainrepos.ListAwaiter = (*ProjectRepository)(nil)
	_ domainrepos.ListAwaiter = (*GalleryRepository)(nil)
	_ domainrepos.ListAwaiter = (*TeamMemberRepository)(nil)
)
