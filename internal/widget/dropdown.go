package widget

// Dropdown tracks whether the history list is showing.
type Dropdown struct {
	open bool
}

// Focus opens the list only when it has entries.
func (d *Dropdown) Focus(entries int) {
	if entries > 0 {
		d.open = true
	}
}

func (d *Dropdown) ClickOutside() {
	d.open = false
}

// Select hides the list and returns the value for the input.
func (d *Dropdown) Select(city string) string {
	d.open = false
	return city
}

func (d *Dropdown) Visible(entries int) bool {
	return d.open && entries > 0
}
