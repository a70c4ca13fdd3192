package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the entity discriminator carried by a record's gid. It is
// produced once at the decode boundary; nothing past this package
// looks at raw gid strings to decide what a record is.
type Kind int

const (
	KindUnknown Kind = iota
	KindCustomer
	KindOrder
	KindRefund
	KindLineItem
	KindProductVariant
)

var kindNames = map[Kind]string{
	KindUnknown:        "Unknown",
	KindCustomer:       "Customer",
	KindOrder:          "Order",
	KindRefund:         "Refund",
	KindLineItem:       "LineItem",
	KindProductVariant: "ProductVariant",
}

var kindByName = map[string]Kind{
	"Customer":       KindCustomer,
	"Order":          KindOrder,
	"Refund":         KindRefund,
	"LineItem":       KindLineItem,
	"ProductVariant": KindProductVariant,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

const gidPrefix = "gid://shopify/"

// KindOf extracts the entity kind from a bulk-export gid such as
// "gid://shopify/Order/123". Anything that does not follow that
// convention is KindUnknown.
func KindOf(gid string) Kind {
	rest, ok := strings.CutPrefix(gid, gidPrefix)
	if !ok {
		return KindUnknown
	}
	name, _, ok := strings.Cut(rest, "/")
	if !ok {
		return KindUnknown
	}
	return kindByName[name]
}

// KindSet marks which entity kinds are roots for the current run.
type KindSet map[Kind]bool

func Roots(kinds ...Kind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

type money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type moneyBag struct {
	ShopMoney money `json:"shopMoney"`
}

// amount parses the decimal string of a money bag. Absent or
// malformed amounts read as zero, never as an error.
func (m moneyBag) amount() decimal.Decimal {
	if m.ShopMoney.Amount == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m.ShopMoney.Amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseTime reads an RFC3339 timestamp, falling back to the zero time
// when the field is absent or unparseable. Callers that need a date
// check IsZero and skip that contribution.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type Address struct {
	City     string
	Province string
	Country  string
}

type Customer struct {
	ID        string
	Email     string
	CreatedAt time.Time
	Address   *Address

	Orders []*Order
}

type Order struct {
	ID         string
	CustomerID string
	CreatedAt  time.Time

	Gross          decimal.Decimal // pre-discount subtotal
	Discounts      decimal.Decimal
	Refunded       decimal.Decimal
	Taxes          decimal.Decimal
	Shipping       decimal.Decimal
	Duties         decimal.Decimal
	AdditionalFees decimal.Decimal
	Total          decimal.Decimal

	Channel string
	Medium  string

	Refunds   []*Refund
	LineItems []*LineItem
}

type Refund struct {
	ID        string
	OrderID   string
	CreatedAt time.Time
	Amount    decimal.Decimal
}

type LineItem struct {
	ID       string
	OrderID  string
	Title    string
	Quantity int
	Price    decimal.Decimal
}

type ProductVariant struct {
	ID    string
	Title string
	SKU   string
	Price decimal.Decimal
}

// Record is the tagged variant produced for every decoded line.
// Exactly one of the entity pointers matching Kind is non-nil.
type Record struct {
	Kind     Kind
	ID       string
	ParentID string

	Customer *Customer
	Order    *Order
	Refund   *Refund
	LineItem *LineItem
	Variant  *ProductVariant
}

// rawLine is the superset of fields any export line may carry. Which
// ones are populated depends on the entity kind.
type rawLine struct {
	ID          string `json:"id"`
	ParentID    string `json:"__parentId"`
	CreatedAt   string `json:"createdAt"`
	ProcessedAt string `json:"processedAt"`

	Email          string `json:"email"`
	DefaultAddress *struct {
		City     string `json:"city"`
		Province string `json:"province"`
		Country  string `json:"country"`
	} `json:"defaultAddress"`

	Customer *struct {
		ID string `json:"id"`
	} `json:"customer"`

	SubtotalPriceSet       moneyBag `json:"subtotalPriceSet"`
	TotalDiscountsSet      moneyBag `json:"totalDiscountsSet"`
	TotalRefundedSet       moneyBag `json:"totalRefundedSet"`
	TotalTaxSet            moneyBag `json:"totalTaxSet"`
	TotalShippingPriceSet  moneyBag `json:"totalShippingPriceSet"`
	TotalDutiesSet         moneyBag `json:"totalDutiesSet"`
	TotalAdditionalFeesSet moneyBag `json:"totalAdditionalFeesSet"`
	TotalPriceSet          moneyBag `json:"totalPriceSet"`

	CustomerJourneySummary *struct {
		LastVisit *struct {
			Source     string `json:"source"`
			SourceType string `json:"sourceType"`
		} `json:"lastVisit"`
	} `json:"customerJourneySummary"`

	Title    string   `json:"title"`
	SKU      string   `json:"sku"`
	Quantity int      `json:"quantity"`
	Price    string   `json:"price"`
	PriceSet moneyBag `json:"originalUnitPriceSet"`
}

// DecodeLine turns one export line into a typed Record. It fails only
// when the line is not valid JSON or carries an unrecognizable gid;
// missing entity fields default (zero money, zero time) per the
// export's sparse-field convention.
func DecodeLine(line string) (*Record, error) {
	var raw rawLine
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, fmt.Errorf("line is not valid JSON: %w", err)
	}

	kind := KindOf(raw.ID)
	if kind == KindUnknown {
		return nil, fmt.Errorf("unrecognized record id %q", raw.ID)
	}

	rec := &Record{Kind: kind, ID: raw.ID, ParentID: raw.ParentID}
	switch kind {
	case KindCustomer:
		rec.Customer = decodeCustomer(&raw)
	case KindOrder:
		rec.Order = decodeOrder(&raw)
	case KindRefund:
		rec.Refund = decodeRefund(&raw)
	case KindLineItem:
		rec.LineItem = decodeLineItem(&raw)
	case KindProductVariant:
		rec.Variant = decodeVariant(&raw)
	}
	return rec, nil
}

func decodeCustomer(raw *rawLine) *Customer {
	c := &Customer{
		ID:        raw.ID,
		Email:     raw.Email,
		CreatedAt: parseTime(raw.CreatedAt),
	}
	if raw.DefaultAddress != nil {
		c.Address = &Address{
			City:     raw.DefaultAddress.City,
			Province: raw.DefaultAddress.Province,
			Country:  raw.DefaultAddress.Country,
		}
	}
	return c
}

func decodeOrder(raw *rawLine) *Order {
	o := &Order{
		ID:             raw.ID,
		CreatedAt:      parseTime(raw.CreatedAt),
		Gross:          raw.SubtotalPriceSet.amount(),
		Discounts:      raw.TotalDiscountsSet.amount(),
		Refunded:       raw.TotalRefundedSet.amount(),
		Taxes:          raw.TotalTaxSet.amount(),
		Shipping:       raw.TotalShippingPriceSet.amount(),
		Duties:         raw.TotalDutiesSet.amount(),
		AdditionalFees: raw.TotalAdditionalFeesSet.amount(),
		Total:          raw.TotalPriceSet.amount(),
	}
	// Customer-rooted exports carry the owner as __parentId,
	// order-rooted ones inline it as customer.id.
	if KindOf(raw.ParentID) == KindCustomer {
		o.CustomerID = raw.ParentID
	} else if raw.Customer != nil {
		o.CustomerID = raw.Customer.ID
	}
	if raw.CustomerJourneySummary != nil && raw.CustomerJourneySummary.LastVisit != nil {
		o.Channel = raw.CustomerJourneySummary.LastVisit.Source
		o.Medium = raw.CustomerJourneySummary.LastVisit.SourceType
	}
	return o
}

func decodeRefund(raw *rawLine) *Refund {
	created := parseTime(raw.CreatedAt)
	if created.IsZero() {
		created = parseTime(raw.ProcessedAt)
	}
	return &Refund{
		ID:        raw.ID,
		OrderID:   raw.ParentID,
		CreatedAt: created,
		Amount:    raw.TotalRefundedSet.amount(),
	}
}

func decodeLineItem(raw *rawLine) *LineItem {
	return &LineItem{
		ID:       raw.ID,
		OrderID:  raw.ParentID,
		Title:    raw.Title,
		Quantity: raw.Quantity,
		Price:    raw.PriceSet.amount(),
	}
}

func decodeVariant(raw *rawLine) *ProductVariant {
	price := decimal.Zero
	if raw.Price != "" {
		if d, err := decimal.NewFromString(raw.Price); err == nil {
			price = d
		}
	}
	return &ProductVariant{
		ID:    raw.ID,
		Title: raw.Title,
		SKU:   raw.SKU,
		Price: price,
	}
}
