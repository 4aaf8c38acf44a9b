package domain

import (
	"net/url"
	"strconv"
)

// Form field names accepted by the messages endpoint.
const (
	FieldBody        = "body"
	FieldGroupID     = "group_id"
	FieldTopicPrefix = "topic"
)

// Message is a single post to the messages API.
type Message struct {
	// Body is the message text. Required.
	Body string

	// GroupID posts into a group. Empty posts to the default feed.
	GroupID string

	// Topics are tagged in order as topic1, topic2, ...
	Topics []string
}

// Validate returns ErrEmptyBody when the message has no text.
func (m Message) Validate() error {
	if m.Body == "" {
		return ErrEmptyBody
	}
	return nil
}

// Form encodes the message as the messages endpoint form fields.
func (m Message) Form() url.Values {
	form := url.Values{}
	form.Set(FieldBody, m.Body)
	if m.GroupID != "" {
		form.Set(FieldGroupID, m.GroupID)
	}
	for i, topic := range m.Topics {
		form.Set(FieldTopicPrefix+strconv.Itoa(i+1), topic)
	}
	return form
}
