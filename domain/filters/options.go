package filters

import (
	"regexp"
	"sort"
	"strings"
)

// excludedTokens are education tokens never offered as choices.
var excludedTokens = map[string]bool{
	"":           true,
	"nan":        true,
	"aposentada": true,
}

var tokenSeparator = regexp.MustCompile(`\s*;\s*`)

// SplitTokens splits a multi-value field on ';' and trims each token.
func SplitTokens(field string) []string {
	parts := tokenSeparator.Split(field, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// DimensionOptions are the choices presented for one dimension.
type DimensionOptions struct {
	Key     string   `json:"key"`
	Display string   `json:"display"`
	Multi   bool     `json:"multi"`
	Choices []string `json:"choices"`
}

func (o DimensionOptions) offers(v string) bool {
	for _, c := range o.Choices {
		if c == v {
			return true
		}
	}
	return false
}

// Options lists the presented choices for every dimension, in catalog order.
type Options []DimensionOptions

// Lookup finds the options of a dimension.
func (o Options) Lookup(key string) (DimensionOptions, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt, true
		}
	}
	return DimensionOptions{}, false
}

// BuildOptions derives the presented choices from the labelled data. Rule-based
// dimensions keep the rule's domain order and only offer labels present in the data;
// free-text dimensions are sorted. Single-choice lists start with All; the
// multi-choice education list is empty-by-default and carries no pseudo-label.
func BuildOptions(catalog Catalog, derived *Derived) Options {
	opts := make(Options, 0, len(catalog))
	for _, dim := range catalog {
		col := derived.Column(dim.Key)
		opt := DimensionOptions{Key: dim.Key, Display: dim.Display, Multi: dim.Multi()}

		switch {
		case dim.Match == MatchContains:
			opt.Choices = distinctTokens(col)
		case dim.Rule != nil:
			present := make(map[string]bool, len(col))
			for _, l := range col {
				present[l] = true
			}
			opt.Choices = []string{All}
			for _, l := range dim.Rule.Labels() {
				if present[l] {
					opt.Choices = append(opt.Choices, l)
				}
			}
		default:
			opt.Choices = append([]string{All}, distinct(col)...)
		}
		opts = append(opts, opt)
	}
	return opts
}

func distinct(col []string) []string {
	seen := make(map[string]bool, len(col))
	var out []string
	for _, v := range col {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func distinctTokens(col []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, field := range col {
		for _, tok := range SplitTokens(field) {
			if excludedTokens[strings.ToLower(tok)] || seen[tok] {
				continue
			}
			seen[tok] = true
			out = append(out, tok)
		}
	}
	sort.Strings(out)
	return out
}
