package domain

// ArticleLink is one entry of the backlink index
type ArticleLink struct {
	Title string // Human readable title, never empty once located
	URL   string // Absolute canonical URL under the target site
}

// LinkList is the outcome of a single locate run
type LinkList struct {
	Links  []ArticleLink
	Source string // Name of the strategy that produced Links, empty when nothing was found
}

// Len returns the number of links in the list
func (l LinkList) Len() int {
	return len(l.Links)
}

// Empty reports whether no source produced usable links
func (l LinkList) Empty() bool {
	return len(l.Links) == 0
}
