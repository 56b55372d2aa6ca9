// Package command implements the runner's command channels: the command files
// named by GITHUB_ENV, GITHUB_OUTPUT, GITHUB_PATH, GITHUB_STATE and
// GITHUB_STEP_SUMMARY, and the "::name::message" commands written to stdout.
//
// Nothing in this package locks. A command file is owned by the runner and
// shared at the path level; one step is expected to have one writer.
package command
