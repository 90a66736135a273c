package scraper

// Worklist is a FIFO of page links with deduplication. The spells scraper
// extends it while draining: variant links discovered on a page are enqueued
// into the same list. The seen set guarantees termination, every link is
// processed at most once.
type Worklist struct {
	items []string
	seen  map[string]bool
	idx   int
}

func NewWorklist() *Worklist {
	return &Worklist{seen: make(map[string]bool)}
}

// Add enqueues a link unless it has already been seen.
func (w *Worklist) Add(link string) {
	if w.seen[link] {
		return
	}
	w.seen[link] = true
	w.items = append(w.items, link)
}

// HasNext reports whether unprocessed links remain.
func (w *Worklist) HasNext() bool {
	return w.idx < len(w.items)
}

// Next returns the next unprocessed link and advances past it.
func (w *Worklist) Next() string {
	link := w.items[w.idx]
	w.idx++
	return link
}

// Seen returns the total number of unique links ever added.
func (w *Worklist) Seen() int {
	return len(w.seen)
}
