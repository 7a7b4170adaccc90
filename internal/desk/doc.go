// Package desk provides the business boundary for frontdesk's triage
// queue. It defines the Service (response workflow, agent bootstrap,
// notifications), the Rank function (agent work order), the Store
// interface (persistence), the change Feed, and domain models.
package desk
