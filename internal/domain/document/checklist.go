package document

import "sort"

// ChecklistItem is the observed state of one uploaded category
type ChecklistItem struct {
	Category string
	Status   DocumentStatus
	FileName string
	Required bool
}

// Checklist summarises a contract's documents against a required set
type Checklist struct {
	Items    []ChecklistItem
	Required []string
	// Missing lists required categories with no upload at all
	Missing []string
	// Pending lists required categories not yet VALIDATED, missing ones included
	Pending  []string
	Complete bool
}

// BuildChecklist derives the checklist from uploaded documents. With an empty
// required set the checklist is always complete.
func BuildChecklist(docs []ContractDocument, required []string) Checklist {
	req := make([]string, 0, len(required))
	isRequired := make(map[string]bool, len(required))
	for _, r := range required {
		r = NormalizeCategory(r)
		if r == "" || isRequired[r] {
			continue
		}
		isRequired[r] = true
		req = append(req, r)
	}

	byCategory := make(map[string]ContractDocument, len(docs))
	items := make([]ChecklistItem, 0, len(docs))
	for _, d := range docs {
		byCategory[d.Category] = d
		items = append(items, ChecklistItem{
			Category: d.Category,
			Status:   d.Status,
			FileName: d.FileName,
			Required: isRequired[d.Category],
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Category < items[j].Category })

	missing := []string{}
	pending := []string{}
	for _, r := range req {
		d, ok := byCategory[r]
		if !ok {
			missing = append(missing, r)
			pending = append(pending, r)
			continue
		}
		if d.Status != DocumentStatusValidated {
			pending = append(pending, r)
		}
	}

	return Checklist{
		Items:    items,
		Required: req,
		Missing:  missing,
		Pending:  pending,
		Complete: len(pending) == 0,
	}
}
