// Package notifier provides delivery channel implementations for
// publication notifications: SMTP email to subscribers, a Slack-compatible
// webhook for social announcements, and a no-op channel for disabled
// deployments. Every channel implements notify.Channel and handles rate
// limiting and retries internally.
package notifier
