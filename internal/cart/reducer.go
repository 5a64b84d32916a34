// ABOUTME: Pure cart transition functions, kept free of persistence and network
// ABOUTME: so the business rules are testable on their own

package cart

// addLine returns lines with quantity of item added. An existing line for
// the same book accumulates; otherwise a new line is appended.
func addLine(lines []Line, item Line, quantity int) []Line {
	for i, l := range lines {
		if l.BookID == item.BookID {
			out := make([]Line, len(lines))
			copy(out, lines)
			out[i].Quantity += quantity
			return out
		}
	}
	item.Quantity = quantity
	return append(append([]Line(nil), lines...), item)
}

// setQuantity returns lines with the quantity for bookID overwritten.
// Absent books are left untouched; only addLine creates lines.
func setQuantity(lines []Line, bookID int64, quantity int) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	for i, l := range out {
		if l.BookID == bookID {
			out[i].Quantity = quantity
			break
		}
	}
	return out
}

// removeLine returns lines without the entry for bookID.
func removeLine(lines []Line, bookID int64) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.BookID != bookID {
			out = append(out, l)
		}
	}
	return out
}

// quantityOf returns the quantity for bookID, or zero when absent.
func quantityOf(lines []Line, bookID int64) int {
	for _, l := range lines {
		if l.BookID == bookID {
			return l.Quantity
		}
	}
	return 0
}
