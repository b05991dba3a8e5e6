package lib

import (
	"errors"
	"flag"
	"strings"
)

// IsFlagPassed reports whether name was set explicitly on set.
func IsFlagPassed(set *flag.FlagSet, name string) bool {
	found := false
	set.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

type ArrayFlags []string

func (i *ArrayFlags) String() string {
	return strings.Join(*i, ",")
}

func (i *ArrayFlags) Set(value string) error {
	for v := range strings.SplitSeq(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*i = append(*i, v)
		}
	}
	return nil
}

// AliasFlag is one find:replacement pair given on the command line.
type AliasFlag struct {
	Find        string
	Replacement string
}

// AliasFlags keeps aliases in the order they were passed, which is their match priority.
type AliasFlags []AliasFlag

func (i *AliasFlags) String() string {
	val := strings.Builder{}
	for _, a := range *i {
		val.WriteString(",")
		val.WriteString(a.Find)
		val.WriteString(":")
		val.WriteString(a.Replacement)
	}
	return strings.TrimPrefix(val.String(), ",")
}

func (i *AliasFlags) Set(value string) error {
	for v := range strings.SplitSeq(value, ",") {
		// whichever of ":" or "=" comes first splits, so "foo=E:\lib" keeps its drive
		sep := strings.IndexAny(v, ":=")
		if sep < 1 {
			return errors.New("invalid seperator, use find:replacement,find1:replacement1,... ")
		}

		*i = append(*i, AliasFlag{Find: v[:sep], Replacement: v[sep+1:]})
	}

	return nil
}
