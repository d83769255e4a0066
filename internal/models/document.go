package models

import "go.mongodb.org/mongo-driver/bson"

// Document is a stored record as the client sent it, plus _id.
type Document = bson.M

// Fields copies d without _id, which must never be written by clients.
func Fields(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}
