// Package functions is a catalog of well-known server-side query functions.
//
// Functions are values, so they can be compared against or used in
// membership tests:
//
//	fields.Reporter.Eq(functions.CurrentUser())
//	// 'reporter' = currentUser()
//
//	fields.FixVersion.In(functions.UnreleasedVersionsOf("JORP"))
//	// 'fixVersion' IN unreleasedVersions('JORP')
//
// Functions taking an optional argument come in pairs: the bare form calls
// the function without arguments and the suffixed form (By, Of, ...) passes
// exactly one.
package functions

import (
	"time"

	"github.com/hugr-lab/jql-go"
)

func call(name string, args ...string) jql.Function {
	return jql.MustFunction(name, args...)
}

// Approved matches service requests that required approval and were approved.
func Approved() jql.Function { return call("approved") }

// Approver matches requests approved by either of the given users.
func Approver(username1, username2 string) jql.Function {
	return call("approver", username1, username2)
}

// Breached matches SLAs whose goal was missed.
func Breached() jql.Function { return call("breached") }

// CascadeOption matches a cascading select parent option.
func CascadeOption(parentOption string) jql.Function {
	return call("cascadeOption", parentOption)
}

// CascadeOptionChild matches a cascading select parent option together with one of its child options.
func CascadeOptionChild(parentOption, childOption string) jql.Function {
	return call("cascadeOption", parentOption, childOption)
}

// ClosedSprints returns the sprints that were completed.
func ClosedSprints() jql.Function { return call("closedSprints") }

// Completed matches SLAs with at least one completed cycle.
func Completed() jql.Function { return call("completed") }

// ComponentsLeadByUser returns the components led by the current user.
func ComponentsLeadByUser() jql.Function { return call("componentsLeadByUser") }

// ComponentsLeadBy returns the components led by username.
func ComponentsLeadBy(username string) jql.Function {
	return call("componentsLeadByUser", username)
}

// CurrentLogin is the start of the current user's session.
func CurrentLogin() jql.Function { return call("currentLogin") }

// CurrentUser is the logged-in user.
func CurrentUser() jql.Function { return call("currentUser") }

// EarliestUnreleasedVersion returns the next version due for release in project.
func EarliestUnreleasedVersion(project string) jql.Function {
	return call("earliestUnreleasedVersion", project)
}

// Elapsed measures time elapsed on an SLA.
func Elapsed() jql.Function { return call("elapsed") }

// EndOfDay is the end of the current day.
func EndOfDay() jql.Function { return call("endOfDay") }

// EndOfDayBy is the end of the current day shifted by increment, e.g. "+1d".
func EndOfDayBy(increment string) jql.Function { return call("endOfDay", increment) }

// EndOfMonth is the end of the current month.
func EndOfMonth() jql.Function { return call("endOfMonth") }

// EndOfMonthBy is the end of the current month shifted by increment.
func EndOfMonthBy(increment string) jql.Function { return call("endOfMonth", increment) }

// EndOfWeek is the end of the current week.
func EndOfWeek() jql.Function { return call("endOfWeek") }

// EndOfWeekBy is the end of the current week shifted by increment.
func EndOfWeekBy(increment string) jql.Function { return call("endOfWeek", increment) }

// EndOfYear is the end of the current year.
func EndOfYear() jql.Function { return call("endOfYear") }

// EndOfYearBy is the end of the current year shifted by increment.
func EndOfYearBy(increment string) jql.Function { return call("endOfYear", increment) }

// IssueHistory returns the issues the current user viewed recently.
func IssueHistory() jql.Function { return call("issueHistory") }

// IssuesWithRemoteLinksByGlobalID returns issues linked to remote objects by global id.
func IssuesWithRemoteLinksByGlobalID() jql.Function {
	return call("issuesWithRemoteLinksByGlobalId")
}

// LastLogin is the start of the current user's previous session.
func LastLogin() jql.Function { return call("lastLogin") }

// LatestReleasedVersion returns the most recently released version of project.
func LatestReleasedVersion(project string) jql.Function {
	return call("latestReleasedVersion", project)
}

// LinkedIssues returns the issues linked to issueKey.
func LinkedIssues(issueKey string) jql.Function { return call("linkedIssues", issueKey) }

// LinkedIssuesOfType returns the issues linked to issueKey by linkType, e.g. "blocks".
func LinkedIssuesOfType(issueKey, linkType string) jql.Function {
	return call("linkedIssues", issueKey, linkType)
}

// MembersOf returns the members of group.
func MembersOf(group string) jql.Function { return call("membersOf", group) }

// MyApproval matches requests awaiting the current user's approval.
func MyApproval() jql.Function { return call("myApproval") }

// MyPending matches requests pending the current user's decision.
func MyPending() jql.Function { return call("myPending") }

// Now is the current time.
func Now() jql.Function { return call("now") }

// OpenSprints returns the sprints that have not been completed.
func OpenSprints() jql.Function { return call("openSprints") }

// Paused matches SLAs that are paused.
func Paused() jql.Function { return call("paused") }

// Pending matches requests awaiting approval.
func Pending() jql.Function { return call("pending") }

// PendingBy matches requests awaiting approval from either of the given users.
func PendingBy(username1, username2 string) jql.Function {
	return call("pendingBy", username1, username2)
}

// ProjectsLeadByUser returns the projects led by the current user.
func ProjectsLeadByUser() jql.Function { return call("projectsLeadByUser") }

// ProjectsLeadBy returns the projects led by username.
func ProjectsLeadBy(username string) jql.Function {
	return call("projectsLeadByUser", username)
}

// ProjectsWhereUserHasPermission returns the projects where the current user holds permission.
func ProjectsWhereUserHasPermission(permission string) jql.Function {
	return call("projectsWhereUserHasPermission", permission)
}

// ProjectsWhereUserHasRole returns the projects where the current user holds role.
func ProjectsWhereUserHasRole(role string) jql.Function {
	return call("projectsWhereUserHasRole", role)
}

// ReleasedVersions returns released versions across all projects.
func ReleasedVersions() jql.Function { return call("releasedVersions") }

// ReleasedVersionsOf returns the released versions of project.
func ReleasedVersionsOf(project string) jql.Function {
	return call("releasedVersions", project)
}

// Remaining measures time remaining on an SLA.
func Remaining() jql.Function { return call("remaining") }

// Running matches SLAs that are running.
func Running() jql.Function { return call("running") }

// StandardIssueTypes returns the issue types that are not sub-task types.
func StandardIssueTypes() jql.Function { return call("standardIssueTypes") }

// StartOfDay is the start of the current day.
func StartOfDay() jql.Function { return call("startOfDay") }

// StartOfDayBy is the start of the current day shifted by increment, e.g. "-1d".
func StartOfDayBy(increment string) jql.Function { return call("startOfDay", increment) }

// StartOfMonth is the start of the current month.
func StartOfMonth() jql.Function { return call("startOfMonth") }

// StartOfMonthBy is the start of the current month shifted by increment.
func StartOfMonthBy(increment string) jql.Function { return call("startOfMonth", increment) }

// StartOfWeek is the start of the current week.
func StartOfWeek() jql.Function { return call("startOfWeek") }

// StartOfWeekBy is the start of the current week shifted by increment.
func StartOfWeekBy(increment string) jql.Function { return call("startOfWeek", increment) }

// StartOfYear is the start of the current year.
func StartOfYear() jql.Function { return call("startOfYear") }

// StartOfYearBy is the start of the current year shifted by increment.
func StartOfYearBy(increment string) jql.Function { return call("startOfYear", increment) }

// SubtaskIssueTypes returns the sub-task issue types.
func SubtaskIssueTypes() jql.Function { return call("subtaskIssueTypes") }

// UnreleasedVersions returns unreleased versions across all projects.
func UnreleasedVersions() jql.Function { return call("unreleasedVersions") }

// UnreleasedVersionsOf returns the unreleased versions of project.
func UnreleasedVersionsOf(project string) jql.Function {
	return call("unreleasedVersions", project)
}

// UpdatedBy returns the issues updated by username.
func UpdatedBy(username string) jql.Function { return call("updatedBy", username) }

// UpdatedBySince restricts updatedBy to changes made on or after from.
func UpdatedBySince(username string, from time.Time) jql.Function {
	return call("updatedBy", username, jql.FormatDateTime(from))
}

// UpdatedByBetween restricts updatedBy to changes made between from and to.
func UpdatedByBetween(username string, from, to time.Time) jql.Function {
	return call("updatedBy", username, jql.FormatDateTime(from), jql.FormatDateTime(to))
}

// VotedIssues returns the issues the current user voted for.
func VotedIssues() jql.Function { return call("votedIssues") }

// WatchedIssues returns the issues the current user watches.
func WatchedIssues() jql.Function { return call("watchedIssues") }

// WithinCalendarHours matches SLAs within their calendar's working hours.
func WithinCalendarHours() jql.Function { return call("withinCalendarHours") }
