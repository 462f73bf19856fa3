// Package migration tracks short uuid field configurations across deployments.
//
// Plan compares the deconstruction of every tagged model field with the state
// recorded by the previous Apply and reports added, removed and altered fields.
package migration
