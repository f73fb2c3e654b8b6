package drift

import "github.com/fwojciec/docdrift"

// orderedSections is a title-keyed view over a section list that preserves
// first-seen insertion order. A repeated title keeps its original position
// but the last occurrence wins the lookup.
type orderedSections struct {
	titles []string
	byName map[string]docdrift.Section
}

func newOrderedSections(sections []docdrift.Section) *orderedSections {
	o := &orderedSections{
		byName: make(map[string]docdrift.Section, len(sections)),
	}
	for _, section := range sections {
		if _, seen := o.byName[section.Title]; !seen {
			o.titles = append(o.titles, section.Title)
		}
		o.byName[section.Title] = section
	}
	return o
}

func (o *orderedSections) get(title string) (docdrift.Section, bool) {
	section, ok := o.byName[title]
	return section, ok
}

// DiffSections aligns two ordered section lists by title and partitions the
// title union into added, removed, modified, and unchanged buckets. A title
// present in both lists is unchanged when content is byte-equal, otherwise
// modified with the content similarity attached. Added follows incoming
// order; removed, modified, and unchanged follow existing order.
func DiffSections(existing, incoming []docdrift.Section) *docdrift.SectionDiff {
	existingByTitle := newOrderedSections(existing)
	incomingByTitle := newOrderedSections(incoming)

	diff := &docdrift.SectionDiff{}

	for _, title := range incomingByTitle.titles {
		if _, ok := existingByTitle.get(title); !ok {
			section, _ := incomingByTitle.get(title)
			diff.Added = append(diff.Added, section)
		}
	}

	for _, title := range existingByTitle.titles {
		existingSection, _ := existingByTitle.get(title)

		incomingSection, ok := incomingByTitle.get(title)
		if !ok {
			diff.Removed = append(diff.Removed, existingSection)
			continue
		}

		if existingSection.Content == incomingSection.Content {
			diff.Unchanged = append(diff.Unchanged, existingSection)
			continue
		}

		diff.Modified = append(diff.Modified, docdrift.ModifiedSection{
			Title:      title,
			Existing:   existingSection,
			Incoming:   incomingSection,
			Similarity: Similarity(existingSection.Content, incomingSection.Content),
		})
	}

	return diff
}
