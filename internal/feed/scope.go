package feed

// ScopeKind selects which posts are eligible for a feed.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeGroup
	ScopeAuthor
	ScopeFollowing
)

type Scope struct {
	Kind     ScopeKind
	Slug     string
	Username string
	ViewerID string
}

func Global() Scope {
	return Scope{Kind: ScopeGlobal}
}

func ByGroup(slug string) Scope {
	return Scope{Kind: ScopeGroup, Slug: slug}
}

func ByAuthor(username string) Scope {
	return Scope{Kind: ScopeAuthor, Username: username}
}

func Following(viewerID string) Scope {
	return Scope{Kind: ScopeFollowing, ViewerID: viewerID}
}
