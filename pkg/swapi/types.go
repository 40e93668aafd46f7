// Package swapi is a client for the public Star Wars demo REST API.
// every response is decoded against a declared schema before it reaches callers.
package swapi

import (
	"github.com/umputun/swbrowse/pkg/decode"
)

// Person is a listed people resource.
type Person struct {
	Name      string   `json:"name" yaml:"name"`
	Height    *string  `json:"height" yaml:"height"`
	Gender    *string  `json:"gender" yaml:"gender"`
	HairColor *string  `json:"hair_color" yaml:"hair_color"`
	SkinColor *string  `json:"skin_color" yaml:"skin_color"`
	EyeColor  *string  `json:"eye_color" yaml:"eye_color"`
	BirthYear *string  `json:"birth_year" yaml:"birth_year"`
	Homeworld string   `json:"homeworld" yaml:"homeworld"`
	Species   []string `json:"species" yaml:"species"`
	Vehicles  []string `json:"vehicles" yaml:"vehicles"`
	Films     []string `json:"films" yaml:"films"`
}

// Film is a detail film resource.
type Film struct {
	Title        string   `json:"title" yaml:"title"`
	EpisodeID    int      `json:"episode_id" yaml:"episode_id"`
	OpeningCrawl string   `json:"opening_crawl" yaml:"opening_crawl"`
	Director     string   `json:"director" yaml:"director"`
	Producer     string   `json:"producer" yaml:"producer"`
	ReleaseDate  string   `json:"release_date" yaml:"release_date"`
	Planets      []string `json:"planets" yaml:"planets"`
	Characters   []string `json:"characters" yaml:"characters"`
	Species      []string `json:"species" yaml:"species"`
	Vehicles     []string `json:"vehicles" yaml:"vehicles"`
	Created      string   `json:"created" yaml:"created"`
	Edited       string   `json:"edited" yaml:"edited"`
	URL          string   `json:"url" yaml:"url"`
}

// Page is the paginated list envelope. next and previous may be null or absent.
type Page[T any] struct {
	Count    int     `json:"count" yaml:"count"`
	Next     *string `json:"next" yaml:"next"`
	Previous *string `json:"previous" yaml:"previous"`
	Results  []T     `json:"results" yaml:"results"`
}

// PersonDecoder validates a people resource.
var PersonDecoder = decode.Struct(func(o *decode.Object) Person {
	return Person{
		Name:      decode.Field(o, "name", decode.String),
		Height:    decode.Field(o, "height", decode.Nullable(decode.String)),
		Gender:    decode.Field(o, "gender", decode.Nullable(decode.String)),
		HairColor: decode.Field(o, "hair_color", decode.Nullable(decode.String)),
		SkinColor: decode.Field(o, "skin_color", decode.Nullable(decode.String)),
		EyeColor:  decode.Field(o, "eye_color", decode.Nullable(decode.String)),
		BirthYear: decode.Field(o, "birth_year", decode.Nullable(decode.String)),
		Homeworld: decode.Field(o, "homeworld", decode.String),
		Species:   decode.Field(o, "species", decode.Array(decode.String)),
		Vehicles:  decode.Field(o, "vehicles", decode.Array(decode.String)),
		Films:     decode.Field(o, "films", decode.Array(decode.String)),
	}
})

// FilmDecoder validates a film resource.
var FilmDecoder = decode.Struct(func(o *decode.Object) Film {
	return Film{
		Title:        decode.Field(o, "title", decode.String),
		EpisodeID:    decode.Field(o, "episode_id", decode.Int),
		OpeningCrawl: decode.Field(o, "opening_crawl", decode.String),
		Director:     decode.Field(o, "director", decode.String),
		Producer:     decode.Field(o, "producer", decode.String),
		ReleaseDate:  decode.Field(o, "release_date", decode.String),
		Planets:      decode.Field(o, "planets", decode.Array(decode.String)),
		Characters:   decode.Field(o, "characters", decode.Array(decode.String)),
		Species:      decode.Field(o, "species", decode.Array(decode.String)),
		Vehicles:     decode.Field(o, "vehicles", decode.Array(decode.String)),
		Created:      decode.Field(o, "created", decode.String),
		Edited:       decode.Field(o, "edited", decode.String),
		URL:          decode.Field(o, "url", decode.String),
	}
})

// PageDecoder wraps a results decoder into the list envelope.
func PageDecoder[T any](results decode.Decoder[[]T]) decode.Decoder[Page[T]] {
	return decode.Struct(func(o *decode.Object) Page[T] {
		return Page[T]{
			Count:    decode.Field(o, "count", decode.Int),
			Next:     decode.OptionalField(o, "next", decode.String).Ptr(),
			Previous: decode.OptionalField(o, "previous", decode.String).Ptr(),
			Results:  decode.Field(o, "results", results),
		}
	})
}

// PeoplePageDecoder validates a people list page; an empty results list is rejected.
var PeoplePageDecoder = PageDecoder(decode.NonEmpty(decode.Array(PersonDecoder)))
