package model

// SlotCount is the number of attribute dimensions a base product can carry.
const SlotCount = 3

// ReservedSkuPrefix is reserved for generated SKUs; clients may not supply it.
const ReservedSkuPrefix = "SKU"

// BaseProduct is a catalog item with up to three named attribute slots.
// Slots are filled contiguously from slot 1 and are pairwise distinct;
// an unset slot holds the empty string.
type BaseProduct struct {
	BaseModel
	Name        string `db:"name" json:"name"`
	Label       string `db:"label" json:"label"`
	Description string `db:"description" json:"description"`
	Attribute1  string `db:"attribute1" json:"attribute1"`
	Attribute2  string `db:"attribute2" json:"attribute2"`
	Attribute3  string `db:"attribute3" json:"attribute3"`
	IsDeleted   bool   `db:"is_deleted" json:"-"`
}

// Variant is one attribute-value combination under a base product. ValueK
// corresponds positionally to the parent's attribute slot K.
type Variant struct {
	BaseModel
	BaseID    int    `db:"base_id" json:"baseId"`
	Sku       string `db:"sku" json:"sku"`
	Barcode   string `db:"barcode" json:"barcode"`
	Quantity  int    `db:"quantity" json:"quantity"`
	Value1    string `db:"value1" json:"value1"`
	Value2    string `db:"value2" json:"value2"`
	Value3    string `db:"value3" json:"value3"`
	IsDeleted bool   `db:"is_deleted" json:"-"`
}

// Slots is the ordered fixed-size view over the three attribute columns.
// Compaction and contiguity rules are expressed against this type instead
// of the individual columns.
type Slots [SlotCount]string

func (p *BaseProduct) AttributeSlots() Slots {
	return Slots{p.Attribute1, p.Attribute2, p.Attribute3}
}

func (p *BaseProduct) SetAttributeSlots(s Slots) {
	p.Attribute1, p.Attribute2, p.Attribute3 = s[0], s[1], s[2]
}

func (v *Variant) ValueSlots() Slots {
	return Slots{v.Value1, v.Value2, v.Value3}
}

func (v *Variant) SetValueSlots(s Slots) {
	v.Value1, v.Value2, v.Value3 = s[0], s[1], s[2]
}

// Compact removes slot k (0-based) and shifts the following slots left,
// clearing the vacated trailing slot to the empty string.
func (s Slots) Compact(k int) Slots {
	if k < 0 || k >= SlotCount {
		return s
	}
	for i := k; i < SlotCount-1; i++ {
		s[i] = s[i+1]
	}
	s[SlotCount-1] = ""
	return s
}

// Set reports how many leading slots are filled.
func (s Slots) Set() int {
	n := 0
	for _, v := range s {
		if v == "" {
			break
		}
		n++
	}
	return n
}

// SlotIndex maps a client-facing slot key ("attribute1".."attribute3") to
// its 0-based index, or -1 for anything else.
func SlotIndex(key string) int {
	switch key {
	case "attribute1":
		return 0
	case "attribute2":
		return 1
	case "attribute3":
		return 2
	default:
		return -1
	}
}
