package dom

import "strings"

// compound is one selector step like "section.sr-sec#intro"
type compound struct {
	tag     string
	id      string
	classes []string
}

// selector is a chain of compounds joined by descendant combinators
type selector []compound

func parseSelector(s string) (selector, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, false
	}
	sel := make(selector, 0, len(fields))
	for _, f := range fields {
		c, ok := parseCompound(f)
		if !ok {
			return nil, false
		}
		sel = append(sel, c)
	}
	return sel, true
}

func parseCompound(s string) (compound, bool) {
	var c compound
	i := 0
	readName := func() string {
		start := i
		for i < len(s) && s[i] != '.' && s[i] != '#' {
			i++
		}
		return s[start:i]
	}

	c.tag = strings.ToLower(readName())
	for i < len(s) {
		marker := s[i]
		i++
		name := readName()
		if name == "" {
			return compound{}, false
		}
		switch marker {
		case '.':
			c.classes = append(c.classes, name)
		case '#':
			if c.id != "" {
				return compound{}, false
			}
			c.id = name
		}
	}
	if c.tag == "*" {
		c.tag = ""
	}
	return c, true
}

func (c compound) matches(el *Element) bool {
	if c.tag != "" && c.tag != el.Tag {
		return false
	}
	if c.id != "" && c.id != el.ID {
		return false
	}
	for _, cls := range c.classes {
		if !el.HasClass(cls) {
			return false
		}
	}
	return true
}

// matches checks the last compound against el and earlier ones against its ancestors
func (s selector) matches(el *Element) bool {
	last := len(s) - 1
	if !s[last].matches(el) {
		return false
	}
	step := last - 1
	for anc := el.parent; anc != nil && step >= 0; anc = anc.parent {
		if s[step].matches(anc) {
			step--
		}
	}
	return step < 0
}
