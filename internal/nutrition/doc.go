// Package nutrition holds the pure calculations behind the pet: daily goals
// from a profile, today's progress against those goals, the weighted hunger
// score and the mood it maps to. Nothing here touches storage or the clock;
// callers pass "now" explicitly.
package nutrition
