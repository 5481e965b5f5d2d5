// Package repository handles all interactions with the contact store.
//
// It holds the contact collection and the methods to fetch, persist,
// update or delete entries, abstracting storage away from the service layer.
package repository
