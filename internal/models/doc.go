// Package models defines domain entities for the vtriage client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs mirroring the triage backend's API schemas
//   - [Video] : A video in the triage inbox/saved/discarded lists
//   - [Channel] : A subscribed channel
//   - [ImportResult] : Aggregate returned by the backend's import endpoints
//   - [ExportData] : Channel/video export document
//
// 2. Persistent Entities: rows in the local SQLite mirror
//   - [CachedVideo] : A locally cached copy of a fetched video
//
// DTO field tags follow the backend's JSON schemas (original FastAPI service) so
// responses decode without mapping layers.
package models
