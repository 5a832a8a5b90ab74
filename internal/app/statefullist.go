package app

// statefulList is a slice with a cursor. Navigation clamps at both ends
// rather than wrapping.
type statefulList[T any] struct {
	items  []T
	cursor int
}

func (l *statefulList[T]) next() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
	}
}

func (l *statefulList[T]) previous() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *statefulList[T]) start() { l.cursor = 0 }

func (l *statefulList[T]) end() {
	if len(l.items) > 0 {
		l.cursor = len(l.items) - 1
	} else {
		l.cursor = 0
	}
}

// selected returns the item under the cursor, if any.
func (l *statefulList[T]) selected() (T, bool) {
	var zero T
	if len(l.items) == 0 {
		return zero, false
	}
	return l.items[l.cursor], true
}

// replace swaps the backing slice, clamping the cursor into range.
func (l *statefulList[T]) replace(items []T) {
	l.items = items
	if l.cursor >= len(items) {
		l.end()
	}
}

// push appends an item without moving the cursor.
func (l *statefulList[T]) push(item T) {
	l.items = append(l.items, item)
}

func (l *statefulList[T]) len() int { return len(l.items) }
