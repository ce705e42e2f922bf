package core

import (
	"fmt"
	"slices"
)

type Tag string

const (
	TagOthers        Tag = "Others"
	TagGames         Tag = "Games"
	TagHealth        Tag = "Health"
	TagTechnology    Tag = "Technology"
	TagProgramming   Tag = "Programming"
	TagFinances      Tag = "Finances"
	TagScience       Tag = "Science"
	TagArts          Tag = "Arts"
	TagSports        Tag = "Sports"
	TagNews          Tag = "News"
	TagEntertainment Tag = "Entertainment"
	TagCulture       Tag = "Culture"
	TagPolitics      Tag = "Politics"
	TagAtHome        Tag = "At Home"
	TagFreeTime      Tag = "Free Time"
)

// Tags is the closed set of recognized tags.
var Tags = []Tag{
	TagOthers, TagGames, TagHealth, TagTechnology, TagProgramming,
	TagFinances, TagScience, TagArts, TagSports, TagNews,
	TagEntertainment, TagCulture, TagPolitics, TagAtHome, TagFreeTime,
}

func ParseTag(s string) (Tag, error) {
	tag := Tag(s)
	if !slices.Contains(Tags, tag) {
		return "", fmt.Errorf("%w: unknown tag %q", ErrInvalidArgument, s)
	}
	return tag, nil
}

func (t Tag) String() string {
	return string(t)
}
