// package repositories provides the persistence layer for the local video cache.
//
// The cache mirrors videos fetched from the triage backend so listings stay
// browsable offline and repeated fetches can be diffed cheaply. The backend
// remains the source of truth; rows here are overwritten on every fetch.
package repositories
