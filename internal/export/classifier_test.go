package export_test

import (
	"testing"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

type sliceSource struct {
	lines []string
	pos   int
}

func (s *sliceSource) Next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true
}

func (s *sliceSource) Err() error { return nil }

func (s *sliceSource) Close() error { return nil }

func TestClassifyCustomerRooted(t *testing.T) {
	src := &sliceSource{lines: []string{
		`{"id":"gid://shopify/Customer/1","createdAt":"2025-01-01T00:00:00Z"}`,
		``,
		`{"id":"gid://shopify/Order/10","__parentId":"gid://shopify/Customer/1","createdAt":"2025-04-29T10:00:00Z"}`,
		`{"id":"gid://shopify/Order/11","__parentId":"gid://shopify/Customer/1","createdAt":"2025-04-30T10:00:00Z"}`,
		`this line is not valid structured data`,
		`{"id":"gid://shopify/Refund/5","__parentId":"gid://shopify/Order/10"}`,
		`{"id":"gid://shopify/ProductVariant/3"}`,
	}}

	c, err := export.Classify(src, export.Roots(export.KindCustomer))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if len(c.RootsByID) != 1 {
		t.Fatalf("expected 1 root, got %d", len(c.RootsByID))
	}
	children := c.ChildrenByParent["gid://shopify/Customer/1"]
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	// Append order within a parent follows line order.
	if children[0].ID != "gid://shopify/Order/10" || children[1].ID != "gid://shopify/Order/11" {
		t.Errorf("children out of order: %s, %s", children[0].ID, children[1].ID)
	}

	// One garbage line, one refund whose parent kind is not a root in
	// this run, one parentless variant.
	if c.Stats.MalformedLines != 3 {
		t.Errorf("expected 3 malformed lines, got %d", c.Stats.MalformedLines)
	}
}

func TestClassifyOrderRooted(t *testing.T) {
	src := &sliceSource{lines: []string{
		`{"id":"gid://shopify/Order/10","createdAt":"2025-04-29T10:00:00Z"}`,
		`{"id":"gid://shopify/Refund/5","__parentId":"gid://shopify/Order/10","createdAt":"2025-05-01T00:00:00Z"}`,
		`{"id":"gid://shopify/LineItem/7","__parentId":"gid://shopify/Order/10","quantity":2}`,
	}}

	c, err := export.Classify(src, export.Roots(export.KindOrder))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if len(c.RootsByID) != 1 {
		t.Fatalf("expected 1 root, got %d", len(c.RootsByID))
	}
	if got := len(c.ChildrenByParent["gid://shopify/Order/10"]); got != 2 {
		t.Fatalf("expected 2 children, got %d", got)
	}
	if c.Stats.MalformedLines != 0 {
		t.Errorf("expected no malformed lines, got %d", c.Stats.MalformedLines)
	}
}

func TestClassifyKeepsGoingPastBadLines(t *testing.T) {
	src := &sliceSource{lines: []string{
		`{{{`,
		`{"id":"gid://shopify/Customer/1"}`,
	}}

	c, err := export.Classify(src, export.Roots(export.KindCustomer))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if c.Stats.MalformedLines != 1 {
		t.Errorf("expected 1 malformed line, got %d", c.Stats.MalformedLines)
	}
	if _, ok := c.RootsByID["gid://shopify/Customer/1"]; !ok {
		t.Errorf("valid line after a bad one should still be classified")
	}
}
