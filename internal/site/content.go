// Package site holds the portfolio content served to the public pages:
// site configuration, projects, socials, services, resume, and blog posts.
// Content is read-mostly; writes happen through the seed tool and the
// admin blog sync.
package site

import "time"

// Config is the singleton site configuration document.
type Config struct {
	Name         string    `json:"name" dynamodbav:"Name"`
	ProfileImage string    `json:"profileImage,omitempty" dynamodbav:"ProfileImage"`
	Header       Header    `json:"header" dynamodbav:"Header"`
	ShowResume   bool      `json:"showResume" dynamodbav:"ShowResume"`
	DarkMode     bool      `json:"darkMode" dynamodbav:"DarkMode"`
	About        string    `json:"about" dynamodbav:"About"`
	UpdatedAt    time.Time `json:"updatedAt" dynamodbav:"UpdatedAt"`
}

// Header holds the four landing-page tagline lines.
type Header struct {
	TaglineOne   string `json:"taglineOne" dynamodbav:"TaglineOne"`
	TaglineTwo   string `json:"taglineTwo" dynamodbav:"TaglineTwo"`
	TaglineThree string `json:"taglineThree" dynamodbav:"TaglineThree"`
	TaglineFour  string `json:"taglineFour" dynamodbav:"TaglineFour"`
}

// Social is one external profile link.
type Social struct {
	ID    string `json:"id" dynamodbav:"ID"`
	Title string `json:"title" dynamodbav:"Title"`
	Link  string `json:"link" dynamodbav:"Link"`
}

// Project is one portfolio work item.
type Project struct {
	ID          string `json:"id" dynamodbav:"ID"`
	Title       string `json:"title" dynamodbav:"Title"`
	Description string `json:"description" dynamodbav:"Description"`
	ImageSrc    string `json:"imageSrc,omitempty" dynamodbav:"ImageSrc"`
	URL         string `json:"url,omitempty" dynamodbav:"URL"`
}

// Service is one offered-service blurb.
type Service struct {
	ID          string `json:"id" dynamodbav:"ID"`
	Title       string `json:"title" dynamodbav:"Title"`
	Description string `json:"description" dynamodbav:"Description"`
}

// Resume is the resume page content.
type Resume struct {
	Tagline     string       `json:"tagline" dynamodbav:"Tagline"`
	Description string       `json:"description" dynamodbav:"Description"`
	Experiences []Experience `json:"experiences" dynamodbav:"Experiences"`
	Education   []Education  `json:"education" dynamodbav:"Education"`
	Languages   []string     `json:"languages,omitempty" dynamodbav:"Languages"`
	Frameworks  []string     `json:"frameworks,omitempty" dynamodbav:"Frameworks"`
	Others      []string     `json:"others,omitempty" dynamodbav:"Others"`
}

// Experience is one resume work entry.
type Experience struct {
	ID       string   `json:"id" dynamodbav:"ID"`
	Dates    string   `json:"dates" dynamodbav:"Dates"`
	Type     string   `json:"type" dynamodbav:"Type"`
	Position string   `json:"position" dynamodbav:"Position"`
	Bullets  []string `json:"bullets,omitempty" dynamodbav:"Bullets"`
}

// Education is one resume education entry.
type Education struct {
	Name  string `json:"name" dynamodbav:"Name"`
	Dates string `json:"dates,omitempty" dynamodbav:"Dates"`
	About string `json:"about,omitempty" dynamodbav:"About"`
}

// Post is one blog post, authored locally or synced from the external feed.
type Post struct {
	ID          string    `json:"id" dynamodbav:"ID"`
	Title       string    `json:"title" dynamodbav:"Title"`
	Excerpt     string    `json:"excerpt,omitempty" dynamodbav:"Excerpt"`
	Content     string    `json:"content,omitempty" dynamodbav:"Content"`
	Author      string    `json:"author,omitempty" dynamodbav:"Author"`
	Category    string    `json:"category,omitempty" dynamodbav:"Category"`
	Tags        []string  `json:"tags,omitempty" dynamodbav:"Tags"`
	Image       string    `json:"image,omitempty" dynamodbav:"Image"`
	Featured    bool      `json:"featured,omitempty" dynamodbav:"Featured"`
	SourceURL   string    `json:"sourceUrl,omitempty" dynamodbav:"SourceURL"`
	PublishedAt time.Time `json:"publishedAt" dynamodbav:"PublishedAt"`
}
