package walker

// IgnoredFunc is called once for every directory found to be ignored
type IgnoredFunc func(dir string)

// Classification is the outcome of evaluating one directory
type Classification string

const (
	// Pruned directories are equal to or below an excluded path
	Pruned Classification = "Pruned (Excluded Path)"
	// Skipped directories already hold a marker file
	Skipped Classification = "Skipped (Marker Present)"
	// Ignored directories matched an ignore rule and were reported
	Ignored Classification = "Ignored (Gitignore Rule)"
	// Descended directories were entered
	Descended Classification = "Descended"
	// Unreadable directories could not be listed
	Unreadable Classification = "Skipped (Read Error)"
)

// Item holds the classification of one directory
type Item struct {
	Path  string         `json:"path"`
	Class Classification `json:"class"`
}

// Tracker collects classified directories. Descended directories are only
// counted; every other class is also kept as an Item. The walk is
// single-threaded so no locking is needed.
type Tracker struct {
	items  []Item
	counts map[Classification]int
}

// NewTracker creates a new Tracker
func NewTracker() *Tracker {
	return &Tracker{counts: make(map[Classification]int)}
}

// Track records path with its classification. Safe on a nil tracker.
func (t *Tracker) Track(path string, class Classification) {
	if t == nil {
		return
	}
	t.counts[class]++
	if class != Descended {
		t.items = append(t.items, Item{Path: path, Class: class})
	}
}

// Items returns the tracked items other than Descended ones, in visit order
func (t *Tracker) Items() []Item {
	if t == nil {
		return nil
	}
	return t.items
}

// Count returns how many directories were given class
func (t *Tracker) Count(class Classification) int {
	if t == nil {
		return 0
	}
	return t.counts[class]
}

// Filter returns the tracked items whose class is one of classes
func (t *Tracker) Filter(classes ...Classification) []Item {
	var out []Item
	for _, item := range t.Items() {
		for _, c := range classes {
			if item.Class == c {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
