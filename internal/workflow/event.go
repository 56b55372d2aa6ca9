package workflow

// EventName is the webhook event that triggered a workflow run.
type EventName string

const (
	EventBranchProtectionRule     EventName = "branch_protection_rule"
	EventCheckRun                 EventName = "check_run"
	EventCheckSuite               EventName = "check_suite"
	EventCreate                   EventName = "create"
	EventDelete                   EventName = "delete"
	EventDeployment               EventName = "deployment"
	EventDeploymentStatus         EventName = "deployment_status"
	EventDiscussion               EventName = "discussion"
	EventDiscussionComment        EventName = "discussion_comment"
	EventFork                     EventName = "fork"
	EventGollum                   EventName = "gollum"
	EventIssueComment             EventName = "issue_comment"
	EventIssues                   EventName = "issues"
	EventLabel                    EventName = "label"
	EventMergeGroup               EventName = "merge_group"
	EventMilestone                EventName = "milestone"
	EventPageBuild                EventName = "page_build"
	EventProject                  EventName = "project"
	EventProjectCard              EventName = "project_card"
	EventProjectColumn            EventName = "project_column"
	EventPublic                   EventName = "public"
	EventPullRequest              EventName = "pull_request"
	EventPullRequestReview        EventName = "pull_request_review"
	EventPullRequestReviewComment EventName = "pull_request_review_comment"
	EventPullRequestTarget        EventName = "pull_request_target"
	EventPush                     EventName = "push"
	EventRegistryPackage          EventName = "registry_package"
	EventRelease                  EventName = "release"
	EventRepositoryDispatch       EventName = "repository_dispatch"
	EventSchedule                 EventName = "schedule"
	EventStatus                   EventName = "status"
	EventWatch                    EventName = "watch"
	EventWorkflowCall             EventName = "workflow_call"
	EventWorkflowDispatch         EventName = "workflow_dispatch"
	EventWorkflowRun              EventName = "workflow_run"
)

var eventNames = []string{
	string(EventBranchProtectionRule), string(EventCheckRun), string(EventCheckSuite),
	string(EventCreate), string(EventDelete), string(EventDeployment),
	string(EventDeploymentStatus), string(EventDiscussion), string(EventDiscussionComment),
	string(EventFork), string(EventGollum), string(EventIssueComment), string(EventIssues),
	string(EventLabel), string(EventMergeGroup), string(EventMilestone), string(EventPageBuild),
	string(EventProject), string(EventProjectCard), string(EventProjectColumn), string(EventPublic),
	string(EventPullRequest), string(EventPullRequestReview), string(EventPullRequestReviewComment),
	string(EventPullRequestTarget), string(EventPush), string(EventRegistryPackage),
	string(EventRelease), string(EventRepositoryDispatch), string(EventSchedule),
	string(EventStatus), string(EventWatch), string(EventWorkflowCall),
	string(EventWorkflowDispatch), string(EventWorkflowRun),
}

func (r *Reader) EventName() (EventName, error) {
	v, err := r.requireEnum("GITHUB_EVENT_NAME", eventNames)
	return EventName(v), err
}
