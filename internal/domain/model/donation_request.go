package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	domainErrors "github.com/kawsar-hussain/server-A11/internal/domain/errors"
)

// Known donation request statuses. The set is open: any string is stored.
const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "inprogress"
	RequestStatusDone       = "done"
	RequestStatusCanceled   = "canceled"
)

// DonationRequest is a blood donation request document in the "request" collection.
type DonationRequest struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty" json:"_id"`
	RequesterName  string                 `bson:"requesterName,omitempty" json:"requesterName,omitempty"`
	RequesterEmail string                 `bson:"requesterEmail" json:"requesterEmail"`
	RecipientName  string                 `bson:"recipientName,omitempty" json:"recipientName,omitempty"`
	BloodGroup     string                 `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	District       string                 `bson:"district,omitempty" json:"district,omitempty"`
	Upazila        string                 `bson:"upazila,omitempty" json:"upazila,omitempty"`
	Hospital       string                 `bson:"hospital,omitempty" json:"hospital,omitempty"`
	Address        string                 `bson:"address,omitempty" json:"address,omitempty"`
	DonationDate   string                 `bson:"donationDate,omitempty" json:"donationDate,omitempty"`
	DonationTime   string                 `bson:"donationTime,omitempty" json:"donationTime,omitempty"`
	Message        string                 `bson:"message,omitempty" json:"message,omitempty"`
	Status         string                 `bson:"status" json:"status"`
	DonorName      string                 `bson:"donorName,omitempty" json:"donorName,omitempty"`
	DonorEmail     string                 `bson:"donorEmail,omitempty" json:"donorEmail,omitempty"`
	Extra          map[string]interface{} `bson:"extra,omitempty" json:"extra,omitempty"`
	CreatedAt      time.Time              `bson:"createdAt" json:"createdAt"`
}

// RequestFields carries the client-supplied fields of a donation request.
// A nil pointer means "not provided". Unknown JSON keys are collected into Extra.
type RequestFields struct {
	RequesterName  *string                `json:"requesterName,omitempty"`
	RequesterEmail *string                `json:"requesterEmail,omitempty"`
	RecipientName  *string                `json:"recipientName,omitempty"`
	BloodGroup     *string                `json:"bloodGroup,omitempty"`
	District       *string                `json:"district,omitempty"`
	Upazila        *string                `json:"upazila,omitempty"`
	Hospital       *string                `json:"hospital,omitempty"`
	Address        *string                `json:"address,omitempty"`
	DonationDate   *string                `json:"donationDate,omitempty"`
	DonationTime   *string                `json:"donationTime,omitempty"`
	Message        *string                `json:"message,omitempty"`
	Status         *string                `json:"status,omitempty"`
	DonorName      *string                `json:"donorName,omitempty"`
	DonorEmail     *string                `json:"donorEmail,omitempty"`
	Extra          map[string]interface{} `json:"extra,omitempty"`
}

var requestFieldKeys = map[string]struct{}{
	"requesterName": {}, "requesterEmail": {}, "recipientName": {}, "bloodGroup": {},
	"district": {}, "upazila": {}, "hospital": {}, "address": {}, "donationDate": {},
	"donationTime": {}, "message": {}, "status": {}, "donorName": {}, "donorEmail": {},
	"extra": {},
}

// store-owned keys a client may echo back but never overwrite
var reservedRequestKeys = map[string]struct{}{
	"_id": {}, "id": {}, "createdAt": {},
}

func (f *RequestFields) UnmarshalJSON(data []byte) error {
	type plain RequestFields
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = RequestFields(known)
	for key, value := range raw {
		if _, ok := requestFieldKeys[key]; ok {
			continue
		}
		if _, ok := reservedRequestKeys[key]; ok {
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]interface{})
		}
		f.Extra[key] = value
	}
	return f.ValidateExtraKeys()
}

// ValidateExtraKeys rejects extra attribute names that cannot be stored as a
// single document field: empty names, names with a dot and names starting
// with "$".
func (f *RequestFields) ValidateExtraKeys() error {
	for key := range f.Extra {
		if key == "" || strings.Contains(key, ".") || strings.HasPrefix(key, "$") {
			return domainErrors.NewInvalidInputError(fmt.Sprintf("invalid field name %q", key))
		}
	}
	return nil
}

// NormalizeEmails trims and lower-cases the email fields in place.
func (f *RequestFields) NormalizeEmails() {
	if f.RequesterEmail != nil {
		v := NormalizeEmail(*f.RequesterEmail)
		f.RequesterEmail = &v
	}
	if f.DonorEmail != nil {
		v := NormalizeEmail(*f.DonorEmail)
		f.DonorEmail = &v
	}
}

// IsEmpty reports whether no field was provided.
func (f *RequestFields) IsEmpty() bool {
	return len(f.ToUpdate()) == 0
}

// ToUpdate returns the provided fields keyed by document field name, ready
// for a $set. Extra keys are addressed individually so that other extra
// attributes already stored are kept.
func (f *RequestFields) ToUpdate() map[string]interface{} {
	set := make(map[string]interface{})
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("requesterName", f.RequesterName)
	put("requesterEmail", f.RequesterEmail)
	put("recipientName", f.RecipientName)
	put("bloodGroup", f.BloodGroup)
	put("district", f.District)
	put("upazila", f.Upazila)
	put("hospital", f.Hospital)
	put("address", f.Address)
	put("donationDate", f.DonationDate)
	put("donationTime", f.DonationTime)
	put("message", f.Message)
	put("status", f.Status)
	put("donorName", f.DonorName)
	put("donorEmail", f.DonorEmail)
	for key, value := range f.Extra {
		set["extra."+key] = value
	}
	return set
}

// NewDonationRequest builds a new document from the provided fields.
func NewDonationRequest(f RequestFields, now time.Time) *DonationRequest {
	deref := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}

	req := &DonationRequest{
		RequesterName:  deref(f.RequesterName),
		RequesterEmail: deref(f.RequesterEmail),
		RecipientName:  deref(f.RecipientName),
		BloodGroup:     deref(f.BloodGroup),
		District:       deref(f.District),
		Upazila:        deref(f.Upazila),
		Hospital:       deref(f.Hospital),
		Address:        deref(f.Address),
		DonationDate:   deref(f.DonationDate),
		DonationTime:   deref(f.DonationTime),
		Message:        deref(f.Message),
		Status:         deref(f.Status),
		DonorName:      deref(f.DonorName),
		DonorEmail:     deref(f.DonorEmail),
		CreatedAt:      now,
	}
	if req.Status == "" {
		req.Status = RequestStatusPending
	}
	if len(f.Extra) > 0 {
		req.Extra = make(map[string]interface{}, len(f.Extra))
		for k, v := range f.Extra {
			req.Extra[k] = v
		}
	}
	return req
}

// NormalizeEmail is the canonical form used for storing and matching emails.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
