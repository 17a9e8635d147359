package model

// Category is one node of the self-referencing category tree.  Root
// categories carry a nil ParentID.  The tree is assumed to be acyclic;
// traversal code must still guard against accidental cycles.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – display name.
//  Slug     – URL-friendly unique name.
//  ParentID – parent category, nil for roots.
type Category struct {
	ID       uint64  `json:"id"`        // categories.id
	Name     string  `json:"name"`      // categories.name
	Slug     string  `json:"slug"`      // categories.slug
	ParentID *uint64 `json:"parent_id"` // categories.parent_id (nullable)
}
