package column

import "github.com/hupe1980/topogo/field"

// OrderedColumn keeps cells sorted like VectorColumn but applies binary
// operations as individual ordered edits instead of a full-buffer merge.
// Paired with ordered row containers when rows must stay traversable in
// column order.
type OrderedColumn struct {
	VectorColumn
}

func newOrderedColumn(f field.Arithmetic, pool *Pool, index, dim int) *OrderedColumn {
	return &OrderedColumn{
		VectorColumn: VectorColumn{columnBase: columnBase{f: f, pool: pool, index: index, dim: dim}},
	}
}

func (c *OrderedColumn) Add(other Column) error {
	return c.MultiplySourceAndAdd(other, 1)
}

func (c *OrderedColumn) MultiplyTargetAndAdd(v field.Element, other Column) error {
	// Snapshot before scaling: other may alias this column.
	src := other.Entries()

	if err := c.Scale(v); err != nil {
		return err
	}

	for _, e := range src {
		cur, _ := c.ValueAt(e.Row)
		c.SetRow(e.Row, c.f.Add(cur, e.Value))
	}

	return nil
}

func (c *OrderedColumn) MultiplySourceAndAdd(other Column, v field.Element) error {
	if v == 0 {
		return nil
	}

	for _, e := range other.Entries() {
		cur, _ := c.ValueAt(e.Row)
		c.SetRow(e.Row, c.f.MulAdd(e.Value, v, cur))
	}

	return nil
}
