// Package join reattaches child records to the root entities that own
// them, turning the flattened export back into nested entities.
package join

import (
	"github.com/op/go-logging"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

var log = logging.MustGetLogger("log")

// Attach walks every parent id seen among the children and, when that
// parent is a known root, assigns the children to the root's typed
// collections. Children whose parent was never observed are orphans:
// they are counted and dropped, never given a synthesized root.
//
// Collections are assigned, not appended, so attaching twice over the
// same inputs yields the same result.
func Attach(c *export.Classified) (map[string]*export.Record, int) {
	orphans := 0

	for parentID, children := range c.ChildrenByParent {
		root, ok := c.RootsByID[parentID]
		if !ok {
			orphans += len(children)
			log.Debugf("dropping %d children of unknown parent %s", len(children), parentID)
			continue
		}

		switch root.Kind {
		case export.KindCustomer:
			var orders []*export.Order
			for _, child := range children {
				if child.Kind != export.KindOrder {
					orphans++
					continue
				}
				child.Order.CustomerID = root.ID
				orders = append(orders, child.Order)
			}
			root.Customer.Orders = orders

		case export.KindOrder:
			var refunds []*export.Refund
			var items []*export.LineItem
			for _, child := range children {
				switch child.Kind {
				case export.KindRefund:
					child.Refund.OrderID = root.ID
					refunds = append(refunds, child.Refund)
				case export.KindLineItem:
					child.LineItem.OrderID = root.ID
					items = append(items, child.LineItem)
				default:
					orphans++
				}
			}
			root.Order.Refunds = refunds
			root.Order.LineItems = items

		default:
			orphans += len(children)
		}
	}

	c.Stats.OrphanedChildren = orphans
	return c.RootsByID, orphans
}
