// Package service contains the business logic.
//
// It sits between the handler and repository layers. Handlers pass in
// bound and validated payloads; services decide existence, run the
// remaining validation and call the repositories. Repositories are taken
// as interfaces so the in-memory store can stand in for PostgreSQL.
package service
