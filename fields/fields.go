// Package fields is a catalog of well-known issue fields.
//
// Simple fields are package variables; the development metrics live under
// Development. Use ByName to look a simple field up by its query name.
package fields

import (
	"slices"
	"strings"

	"github.com/hugr-lab/jql-go"
)

// Simple fields, rendered by name.
var (
	// AffectedVersion filters on versions affected by the issue.
	AffectedVersion = jql.NewField("affectedVersion")
	// Approvals filters on service request approvals.
	Approvals = jql.NewField("approvals")
	// Assignee filters on the user the issue is assigned to.
	Assignee = jql.NewField("assignee")
	// Attachments filters on whether the issue has attachments.
	Attachments = jql.NewField("attachments")
	// Category filters on the project category.
	Category = jql.NewField("category")
	// ChangeGatingType filters on the change gating type of a change request.
	ChangeGatingType = jql.NewField("change-gating-type")
	// Comment filters on comment text.
	Comment = jql.NewField("comment")
	// Component filters on project components.
	Component = jql.NewField("component")
	// Created filters on the creation date.
	Created = jql.NewField("created")
	// Creator filters on the user who created the issue.
	Creator = jql.NewField("creator")
	// CustomerRequestType filters on the service desk request type.
	CustomerRequestType = jql.NewField("Customer Request Type")
	// Description filters on the description text.
	Description = jql.NewField("description")
	// Due filters on the due date.
	Due = jql.NewField("due")
	// Environment filters on the environment text.
	Environment = jql.NewField("environment")
	// EpicLink filters on the epic an issue belongs to.
	EpicLink = jql.NewField("Epic Link")
	// EpicName filters on the name of an epic.
	EpicName = jql.NewField("Epic Name")
	// EpicStatus filters on the status of an epic.
	EpicStatus = jql.NewField("Epic Status")
	// Filter filters on a saved filter by name or id.
	Filter = jql.NewField("filter")
	// FixVersion filters on versions the issue is fixed in.
	FixVersion = jql.NewField("fixVersion")
	// IssueKey filters on the issue key or id.
	IssueKey = jql.NewField("issueKey")
	// IssueLinkType filters on the type of issue links.
	IssueLinkType = jql.NewField("issueLinkType")
	// IssueType filters on the issue type.
	IssueType = jql.NewField("issueType")
	// Labels filters on issue labels.
	Labels = jql.NewField("labels")
	// LastViewed filters on the date the current user last viewed the issue.
	LastViewed = jql.NewField("lastViewed")
	// Level filters on the security level.
	Level = jql.NewField("level")
	// Organization filters on service desk organizations.
	Organization = jql.NewField("organizations")
	// OriginalEstimate filters on the original time estimate.
	OriginalEstimate = jql.NewField("originalEstimate")
	// Parent filters on the parent of a sub-task.
	Parent = jql.NewField("parent")
	// Priority filters on the issue priority.
	Priority = jql.NewField("priority")
	// Project filters on the project key, id or name.
	Project = jql.NewField("project")
	// ProjectType filters on the project type.
	ProjectType = jql.NewField("projectType")
	// RemainingEstimate filters on the remaining time estimate.
	RemainingEstimate = jql.NewField("remainingEstimate")
	// Reporter filters on the user who reported the issue.
	Reporter = jql.NewField("reporter")
	// RequestChannelType filters on the channel a request was raised through.
	RequestChannelType = jql.NewField("request-channel-type")
	// RequestLastActivityTime filters on the time of the last customer or agent activity.
	RequestLastActivityTime = jql.NewField("request-last-activity-time")
	// Resolution filters on the resolution.
	Resolution = jql.NewField("resolution")
	// Resolved filters on the resolution date.
	Resolved = jql.NewField("resolved")
	// Sprint filters on the sprint by name or id.
	Sprint = jql.NewField("sprint")
	// Status filters on the workflow status.
	Status = jql.NewField("status")
	// StatusCategory filters on the status category.
	StatusCategory = jql.NewField("statusCategory")
	// Summary filters on the summary text.
	Summary = jql.NewField("summary")
	// Text filters on a master field searching all text fields.
	Text = jql.NewField("text")
	// TimeToFirstResponse filters on the time to first response SLA.
	TimeToFirstResponse = jql.NewField("Time to first response")
	// TimeToResolution filters on the time to resolution SLA.
	TimeToResolution = jql.NewField("Time to resolution")
	// TimeSpent filters on logged time.
	TimeSpent = jql.NewField("timeSpent")
	// Updated filters on the last update date.
	Updated = jql.NewField("updated")
	// Voter filters on users who voted for the issue.
	Voter = jql.NewField("voter")
	// Votes filters on the number of votes.
	Votes = jql.NewField("votes")
	// Watcher filters on users watching the issue.
	Watcher = jql.NewField("watcher")
	// Watchers filters on the number of watchers.
	Watchers = jql.NewField("watchers")
	// WorklogComment filters on work log comment text.
	WorklogComment = jql.NewField("worklogComment")
	// WorklogDate filters on work log dates.
	WorklogDate = jql.NewField("worklogDate")
	// WorkRatio filters on the percentage of work done against the original estimate.
	WorkRatio = jql.NewField("workRatio")
)

// Development holds the development metric fields, e.g.
// fields.Development.PullRequests.Open renders Development[pullrequests].open.
var Development = struct {
	Branches struct {
		All jql.Field
	}
	Builds struct {
		All, Failing, Passed, Status jql.Field
	}
	Commits struct {
		All jql.Field
	}
	Deployments struct {
		All, Deployed, NotDeployed, Environment jql.Field
	}
	PullRequests struct {
		All, Open, Declined, Merged, Status jql.Field
	}
	Reviews struct {
		All, Open jql.Field
	}
}{}

func init() {
	d := &Development
	d.Branches.All = jql.DevelopmentField("branches", "all")

	d.Builds.All = jql.DevelopmentField("builds", "all")
	d.Builds.Failing = jql.DevelopmentField("builds", "failing")
	d.Builds.Passed = jql.DevelopmentField("builds", "passed")
	d.Builds.Status = jql.DevelopmentField("builds", "status")

	d.Commits.All = jql.DevelopmentField("commits", "all")

	d.Deployments.All = jql.DevelopmentField("deployments", "all")
	d.Deployments.Deployed = jql.DevelopmentField("deployments", "deployed")
	d.Deployments.NotDeployed = jql.DevelopmentField("deployments", "notDeployed")
	d.Deployments.Environment = jql.DevelopmentField("deployments", "environment")

	d.PullRequests.All = jql.DevelopmentField("pullrequests", "all")
	d.PullRequests.Open = jql.DevelopmentField("pullrequests", "open")
	d.PullRequests.Declined = jql.DevelopmentField("pullrequests", "declined")
	d.PullRequests.Merged = jql.DevelopmentField("pullrequests", "merged")
	d.PullRequests.Status = jql.DevelopmentField("pullrequests", "status")

	d.Reviews.All = jql.DevelopmentField("reviews", "all")
	d.Reviews.Open = jql.DevelopmentField("reviews", "open")
}

// ByName returns the well-known field with the given query name.
func ByName(name string) (jql.Field, bool) {
	f, ok := byName[name]
	return f, ok
}

var byName = func() map[string]jql.Field {
	m := make(map[string]jql.Field)
	for _, f := range []jql.Field{
		AffectedVersion, Approvals, Assignee, Attachments, Category, ChangeGatingType, Comment,
		Component, Created, Creator, CustomerRequestType, Description, Due, Environment, EpicLink,
		EpicName, EpicStatus, Filter, FixVersion, IssueKey, IssueLinkType, IssueType, Labels,
		LastViewed, Level, Organization, OriginalEstimate, Parent, Priority, Project, ProjectType,
		RemainingEstimate, Reporter, RequestChannelType, RequestLastActivityTime, Resolution,
		Resolved, Sprint, Status, StatusCategory, Summary, Text, TimeToFirstResponse,
		TimeToResolution, TimeSpent, Updated, Voter, Votes, Watcher, Watchers, WorklogComment,
		WorklogDate, WorkRatio,
	} {
		m[f.Name()] = f
	}
	return m
}()

// All returns the well-known simple fields.
func All() []jql.Field {
	out := make([]jql.Field, 0, len(byName))
	for _, f := range byName {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b jql.Field) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}
