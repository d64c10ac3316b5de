package category

import (
	"sort"

	"taskcal/internal/model"
)

// Tree is the explicit three-level hierarchy derived from the flat rows.
// Every level is sorted lexicographically; the legacy views sorted only
// main and detail and left sub in first-seen order, which made display
// order depend on file order.
type Tree struct {
	Mains []MainNode `json:"mains"`
}

type MainNode struct {
	Name string `json:"name"`
	// Record is the "main-only" row for this name, if one exists.
	Record *model.Category `json:"record,omitempty"`
	Subs   []SubNode       `json:"subs"`
}

type SubNode struct {
	Name string `json:"name"`
	// Record is the "main+sub" row for this name, if one exists.
	Record  *model.Category  `json:"record,omitempty"`
	Details []model.Category `json:"details"`
}

// BuildTree groups the flat collection by (main, sub, detail) string
// equality. Pure read: the input is never mutated.
func BuildTree(categories []model.Category) Tree {
	type subAgg struct {
		record  *model.Category
		details []model.Category
	}
	type mainAgg struct {
		record   *model.Category
		subs     map[string]*subAgg
		subOrder []string
	}

	mains := map[string]*mainAgg{}
	var mainOrder []string

	for i := range categories {
		c := categories[i]
		m, ok := mains[c.MainCategory]
		if !ok {
			m = &mainAgg{subs: map[string]*subAgg{}}
			mains[c.MainCategory] = m
			mainOrder = append(mainOrder, c.MainCategory)
		}

		if c.SubCategory == "" {
			if c.DetailCategory == "" {
				rec := c
				m.record = &rec
			}
			continue
		}

		s, ok := m.subs[c.SubCategory]
		if !ok {
			s = &subAgg{}
			m.subs[c.SubCategory] = s
			m.subOrder = append(m.subOrder, c.SubCategory)
		}
		if c.DetailCategory == "" {
			rec := c
			s.record = &rec
		} else {
			s.details = append(s.details, c)
		}
	}

	sort.Strings(mainOrder)

	tree := Tree{Mains: make([]MainNode, 0, len(mainOrder))}
	for _, mainName := range mainOrder {
		m := mains[mainName]
		sort.Strings(m.subOrder)

		node := MainNode{Name: mainName, Record: m.record, Subs: make([]SubNode, 0, len(m.subOrder))}
		for _, subName := range m.subOrder {
			s := m.subs[subName]
			details := make([]model.Category, len(s.details))
			copy(details, s.details)
			sort.Slice(details, func(i, j int) bool {
				return details[i].DetailCategory < details[j].DetailCategory
			})
			node.Subs = append(node.Subs, SubNode{Name: subName, Record: s.record, Details: details})
		}
		tree.Mains = append(tree.Mains, node)
	}
	return tree
}

// MainCategories returns the distinct main names in first-occurrence
// order, for the first dropdown of the cascade.
func MainCategories(categories []model.Category) []string {
	return distinct(categories, func(c model.Category) string { return c.MainCategory })
}

// SubCategories returns the distinct non-empty sub names under a main, in
// first-occurrence order.
func SubCategories(categories []model.Category, main string) []string {
	return distinct(categories, func(c model.Category) string {
		if c.MainCategory != main {
			return ""
		}
		return c.SubCategory
	})
}

// DetailCategories returns the distinct non-empty detail names under a
// (main, sub) pair, in first-occurrence order.
func DetailCategories(categories []model.Category, main, sub string) []string {
	return distinct(categories, func(c model.Category) string {
		if c.MainCategory != main || c.SubCategory != sub {
			return ""
		}
		return c.DetailCategory
	})
}

func distinct(categories []model.Category, key func(model.Category) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, c := range categories {
		k := key(c)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
