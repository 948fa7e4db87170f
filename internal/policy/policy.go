// Package policy decides whether an actor may run an operation.
//
// Every operation has a static Rule: the minimum Tier plus an optional job
// ownership check. Authorize evaluates the tier first and only then the
// ownership predicate, so a missing session is always reported as
// Unauthenticated and never as Forbidden.
package policy

import (
	"reefclean/internal/models"
	"reefclean/internal/types"

	"github.com/google/uuid"
)

type Tier int

const (
	TierPublic Tier = iota
	TierAuthenticated
	TierCrewOrAdmin
	TierAdmin
)

func (t Tier) String() string {
	switch t {
	case TierPublic:
		return "public"
	case TierAuthenticated:
		return "authenticated"
	case TierCrewOrAdmin:
		return "crew-or-admin"
	case TierAdmin:
		return "admin"
	}
	return "unknown"
}

type Operation string

const (
	OpHealth Operation = "health"

	OpGetMe     Operation = "users.me"
	OpListUsers Operation = "users.list"

	OpListClients  Operation = "clients.list"
	OpGetClient    Operation = "clients.byId"
	OpCreateClient Operation = "clients.create"
	OpUpdateClient Operation = "clients.update"
	OpDeleteClient Operation = "clients.delete"

	OpListVessels                 Operation = "vessels.list"
	OpGetVessel                   Operation = "vessels.byId"
	OpCreateVessel                Operation = "vessels.create"
	OpUpdateVessel                Operation = "vessels.update"
	OpDeleteVessel                Operation = "vessels.delete"
	OpCreateSectionsFromTemplates Operation = "vessels.createSectionsFromTemplates"

	OpListTemplates       Operation = "sections.templates"
	OpCreateTemplate      Operation = "sections.createTemplate"
	OpCreateVesselSection Operation = "sections.createVesselSection"
	OpUpdateVesselSection Operation = "sections.updateVesselSection"
	OpDeleteVesselSection Operation = "sections.deleteVesselSection"

	OpListJobs        Operation = "jobs.list"
	OpMyJobs          Operation = "jobs.mine"
	OpGetJob          Operation = "jobs.byId"
	OpCreateJob       Operation = "jobs.create"
	OpUpdateJobStatus Operation = "jobs.updateStatus"
	OpAssignJob       Operation = "jobs.assign"
	OpDeleteJob       Operation = "jobs.delete"

	OpUpsertProgress Operation = "progress.upsert"
	OpAddMedia       Operation = "progress.addMedia"
	OpDeleteMedia    Operation = "progress.deleteMedia"

	OpReportSummary Operation = "reports.summary"
	OpReportDetail  Operation = "reports.detail"
	OpReportExport  Operation = "reports.export"
)

type Rule struct {
	Tier Tier
	// OwnershipCheck restricts CREW actors to jobs assigned to them.
	OwnershipCheck bool
}

var rules = map[Operation]Rule{
	OpHealth: {Tier: TierPublic},

	OpGetMe:     {Tier: TierAuthenticated},
	OpListUsers: {Tier: TierAdmin},

	OpListClients:  {Tier: TierAuthenticated},
	OpGetClient:    {Tier: TierAuthenticated},
	OpCreateClient: {Tier: TierAdmin},
	OpUpdateClient: {Tier: TierAdmin},
	OpDeleteClient: {Tier: TierAdmin},

	OpListVessels:                 {Tier: TierAuthenticated},
	OpGetVessel:                   {Tier: TierAuthenticated},
	OpCreateVessel:                {Tier: TierAdmin},
	OpUpdateVessel:                {Tier: TierAdmin},
	OpDeleteVessel:                {Tier: TierAdmin},
	OpCreateSectionsFromTemplates: {Tier: TierAdmin},

	OpListTemplates:       {Tier: TierAuthenticated},
	OpCreateTemplate:      {Tier: TierAdmin},
	OpCreateVesselSection: {Tier: TierAdmin},
	OpUpdateVesselSection: {Tier: TierAdmin},
	OpDeleteVesselSection: {Tier: TierAdmin},

	OpListJobs:        {Tier: TierAuthenticated},
	OpMyJobs:          {Tier: TierCrewOrAdmin},
	OpGetJob:          {Tier: TierAuthenticated, OwnershipCheck: true},
	OpCreateJob:       {Tier: TierAdmin},
	OpUpdateJobStatus: {Tier: TierCrewOrAdmin, OwnershipCheck: true},
	OpAssignJob:       {Tier: TierAdmin},
	OpDeleteJob:       {Tier: TierAdmin},

	OpUpsertProgress: {Tier: TierCrewOrAdmin, OwnershipCheck: true},
	OpAddMedia:       {Tier: TierCrewOrAdmin, OwnershipCheck: true},
	OpDeleteMedia:    {Tier: TierCrewOrAdmin, OwnershipCheck: true},

	OpReportSummary: {Tier: TierAdmin},
	OpReportDetail:  {Tier: TierAdmin},
	OpReportExport:  {Tier: TierAdmin},
}

func RuleFor(op Operation) (Rule, bool) {
	rule, ok := rules[op]
	return rule, ok
}

type Outcome int

const (
	Allowed Outcome = iota
	Unauthenticated
	Forbidden
)

type Decision struct {
	Outcome Outcome
	Reason  string
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allowed
}

// Err converts the decision into one of the shared error kinds, or nil.
func (d Decision) Err() error {
	switch d.Outcome {
	case Unauthenticated:
		return types.NewUnauthenticatedError(d.Reason)
	case Forbidden:
		return types.NewForbiddenError(d.Reason)
	}
	return nil
}

func allow() Decision {
	return Decision{Outcome: Allowed}
}

func deny(reason string) Decision {
	return Decision{Outcome: Forbidden, Reason: reason}
}

// JobOwner describes the job an ownership-checked operation touches.
// A nil JobOwner means the operation is not job-scoped at this call site.
type JobOwner struct {
	AssignedTo *uuid.UUID
}

func OwnerOf(job *models.CleaningJob) *JobOwner {
	if job == nil {
		return nil
	}
	return &JobOwner{AssignedTo: job.AssignedTo}
}

func tierOf(role models.Role) Tier {
	switch role {
	case models.RoleAdmin:
		return TierAdmin
	case models.RoleCrew:
		return TierCrewOrAdmin
	case models.RoleClient:
		return TierAuthenticated
	}
	return TierPublic
}

// Authorize checks actor against the rule for op. actor may be nil when the
// request carries no session.
func Authorize(actor *models.User, op Operation, owner *JobOwner) Decision {
	rule, ok := rules[op]
	if !ok {
		return deny("unknown operation")
	}

	if rule.Tier == TierPublic {
		return allow()
	}

	if actor == nil {
		return Decision{Outcome: Unauthenticated, Reason: "not authenticated"}
	}

	if !actor.IsActive {
		return deny("account is disabled")
	}

	if tierOf(actor.Role) < rule.Tier {
		return deny(rule.Tier.String() + " access required")
	}

	if rule.OwnershipCheck && owner != nil && actor.Role == models.RoleCrew {
		if owner.AssignedTo == nil || *owner.AssignedTo != actor.ID {
			return deny("not assigned to this actor")
		}
	}

	return allow()
}

// AuthorizeJob runs the full check for a job-scoped operation.
func AuthorizeJob(actor *models.User, op Operation, job *models.CleaningJob) error {
	return Authorize(actor, op, OwnerOf(job)).Err()
}
