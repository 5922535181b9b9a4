package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile is a user's developer profile. There is at most one per user.
type Profile struct {
	ID             bson.ObjectID `bson:"_id,omitempty"             json:"id"`
	UserID         bson.ObjectID `bson:"user"                      json:"-"`
	Owner          *ProfileOwner `bson:"owner,omitempty"           json:"user,omitempty"`
	Company        string        `bson:"company,omitempty"         json:"company,omitempty"`
	Website        string        `bson:"website,omitempty"         json:"website,omitempty"`
	Location       string        `bson:"location,omitempty"        json:"location,omitempty"`
	Status         string        `bson:"status"                    json:"status"`
	Skills         []string      `bson:"skills"                    json:"skills"`
	Bio            string        `bson:"bio,omitempty"             json:"bio,omitempty"`
	GithubUsername string        `bson:"github_username,omitempty" json:"githubusername,omitempty"`
	Social         Social        `bson:"social"                    json:"social"`
	Experience     []Experience  `bson:"experience"                json:"experience"`
	Education      []Education   `bson:"education"                 json:"education"`
	CreatedAt      time.Time     `bson:"created_at"                json:"created_at"`
}

// ProfileOwner is the public view of the user that owns a profile.
type ProfileOwner struct {
	ID     bson.ObjectID `bson:"_id"    json:"id"`
	Name   string        `bson:"name"   json:"name"`
	Avatar string        `bson:"avatar" json:"avatar"`
}

// Social holds a profile's social network links.
type Social struct {
	YouTube   string `bson:"youtube,omitempty"   json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"   json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"  json:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty"  json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Experience is one entry of a profile's work history.
type Experience struct {
	ID          bson.ObjectID `bson:"_id"                   json:"id"`
	Title       string        `bson:"title"                 json:"title"`
	Company     string        `bson:"company"               json:"company"`
	Location    string        `bson:"location,omitempty"    json:"location,omitempty"`
	From        time.Time     `bson:"from"                  json:"from"`
	To          *time.Time    `bson:"to,omitempty"          json:"to,omitempty"`
	Current     bool          `bson:"current"               json:"current"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is one entry of a profile's education history.
type Education struct {
	ID           bson.ObjectID `bson:"_id"                   json:"id"`
	School       string        `bson:"school"                json:"school"`
	Degree       string        `bson:"degree,omitempty"      json:"degree,omitempty"`
	FieldOfStudy string        `bson:"field_of_study"        json:"fieldofstudy"`
	From         time.Time     `bson:"from"                  json:"from"`
	To           *time.Time    `bson:"to,omitempty"          json:"to,omitempty"`
	Current      bool          `bson:"current"               json:"current"`
	Description  string        `bson:"description,omitempty" json:"description,omitempty"`
}
