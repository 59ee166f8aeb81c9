package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ResourceKind names one server-owned collection.
type ResourceKind string

const (
	Users       ResourceKind = "users"
	Astrologers ResourceKind = "astrologers"
	Products    ResourceKind = "products"
	Poojas      ResourceKind = "poojas"
	Banners     ResourceKind = "banners"
)

// FieldSpec describes one text field of a create form.
type FieldSpec struct {
	Name        string
	Label       string
	Placeholder string
	Required    bool
	// List fields are edited as tags and sent as one JSON-encoded string.
	List bool
}

// FormSpec describes the multipart contract of a create endpoint.
type FormSpec struct {
	Fields      []FieldSpec
	FileField   string
	FileLabel   string
	MultiFile   bool
	RequireFile bool
	// FileRequiredMessage is shown when RequireFile fails.
	FileRequiredMessage string
}

// Resource is the HTTP contract of one resource family. Empty paths mean the
// operation does not exist server-side.
type Resource struct {
	Kind     ResourceKind
	Title    string
	Singular string
	// NameField is the display-name field used by search and titles.
	NameField    string
	ListPath     string
	CreatePath   string
	DeletePath   string // fmt pattern taking the escaped id
	ApprovalPath string // fmt pattern taking the escaped id
	// StatusField holds the approval flag on records. StatusDefault is used
	// when a record does not carry the field.
	StatusField   string
	StatusDefault bool
	Form          FormSpec
}

// CanCreate reports whether the server exposes a create endpoint.
func (r Resource) CanCreate() bool { return r.CreatePath != "" }

// CanDelete reports whether the server exposes a delete endpoint.
func (r Resource) CanDelete() bool { return r.DeletePath != "" }

// HasApproval reports whether records carry a toggleable status.
func (r Resource) HasApproval() bool { return r.StatusField != "" }

// ApprovalIsLocal reports whether status changes are a UI-only stub.
func (r Resource) ApprovalIsLocal() bool { return r.HasApproval() && r.ApprovalPath == "" }

// Status reads the approval flag of rec.
func (r Resource) Status(rec Record) bool {
	v, ok := rec.Get(r.StatusField)
	if !ok || v.Kind != ValueBool {
		return r.StatusDefault
	}
	return v.Bool
}

// Kinds lists the built-in resource families in navigation order.
func Kinds() []ResourceKind {
	return []ResourceKind{Users, Astrologers, Products, Poojas, Banners}
}

var catalog = map[ResourceKind]Resource{
	Users: {
		Kind:          Users,
		Title:         "Users",
		Singular:      "User",
		NameField:     "name",
		ListPath:      "/api/auth/users",
		StatusField:   "isActive",
		StatusDefault: true,
	},
	Astrologers: {
		Kind:         Astrologers,
		Title:        "Astrologers",
		Singular:     "Astrologer",
		NameField:    "name",
		ListPath:     "/api/astrologer/all",
		CreatePath:   "/api/astrologer/register",
		ApprovalPath: "/api/astrologer/status/%s",
		StatusField:  "isApproved",
		Form: FormSpec{
			Fields: []FieldSpec{
				{Name: "name", Label: "Name", Required: true},
				{Name: "number", Label: "Phone Number", Required: true},
				{Name: "email", Label: "Email", Required: true},
				{Name: "experience", Label: "Experience", Placeholder: "e.g., 5 years", Required: true},
				{Name: "skills", Label: "Skills", List: true},
			},
			FileField: "profilePhoto",
			FileLabel: "Profile Photo",
		},
	},
	Products: {
		Kind:       Products,
		Title:      "Products",
		Singular:   "Product",
		NameField:  "name",
		ListPath:   "/api/products/all",
		CreatePath: "/api/products/add-product",
		DeletePath: "/api/products/delete-product/%s",
		Form: FormSpec{
			Fields: []FieldSpec{
				{Name: "name", Label: "Product Name", Required: true},
				{Name: "price", Label: "Price", Required: true},
				{Name: "description", Label: "Description", Required: true},
			},
			FileField:           "images",
			FileLabel:           "Images",
			MultiFile:           true,
			RequireFile:         true,
			FileRequiredMessage: "Please upload at least one image.",
		},
	},
	Poojas: {
		Kind:       Poojas,
		Title:      "Poojas",
		Singular:   "Pooja",
		NameField:  "name",
		ListPath:   "/api/all-poojas",
		CreatePath: "/api/add-poojas",
		DeletePath: "/api/delete-pooja/%s",
		Form: FormSpec{
			Fields: []FieldSpec{
				{Name: "name", Label: "Pooja Name", Required: true},
				{Name: "categoryname", Label: "Category", Required: true},
				{Name: "description", Label: "Description", Required: true},
			},
			FileField:           "image",
			FileLabel:           "Image",
			RequireFile:         true,
			FileRequiredMessage: "Please upload an image.",
		},
	},
	Banners: {
		Kind:       Banners,
		Title:      "Banners",
		Singular:   "Banner",
		NameField:  "_id",
		ListPath:   "/api/banners/get-banner",
		CreatePath: "/api/banners/add-banner",
		DeletePath: "/api/banners/banners/%s",
		Form: FormSpec{
			FileField:           "images",
			FileLabel:           "Banner Images",
			MultiFile:           true,
			RequireFile:         true,
			FileRequiredMessage: "Please select at least one image.",
		},
	},
}

// Lookup returns the contract for kind.
func Lookup(kind ResourceKind) (Resource, bool) {
	r, ok := catalog[kind]
	return r, ok
}

// MustLookup is Lookup for the built-in kinds.
func MustLookup(kind ResourceKind) Resource {
	r, ok := Lookup(kind)
	if !ok {
		panic(fmt.Sprintf("unknown resource %q", kind))
	}
	return r
}

// ResourceClient issues the list/create/remove/approval calls of one family.
// Each call is a single request with no retry.
type ResourceClient struct {
	client   *Client
	resource Resource
}

// Resource binds the client to a resource family.
func (c *Client) Resource(r Resource) *ResourceClient {
	return &ResourceClient{client: c, resource: r}
}

// ListAll fetches every record. A missing data field is an empty list.
func (rc *ResourceClient) ListAll() ([]Record, error) {
	data, status, err := rc.client.get(rc.resource.ListPath)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope(status, data)
	if err != nil {
		return nil, err
	}
	records, err := recordsFromData(env.Data)
	if err != nil {
		return nil, decodeError(err)
	}
	return records, nil
}

// Create submits a multipart form and returns the created record. Servers
// that answer without a data object yield an empty record.
func (rc *ResourceClient) Create(form *Form) (*Record, error) {
	if !rc.resource.CanCreate() {
		return nil, fmt.Errorf("%s cannot be created", rc.resource.Title)
	}
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}
	data, status, err := rc.client.do(http.MethodPost, rc.resource.CreatePath, contentType, body)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope(status, data)
	if err != nil {
		return nil, err
	}
	rec := Record{Fields: NewObject()}
	if env.Data.Kind == ValueObject {
		rec.Fields = env.Data.Object
	}
	return &rec, nil
}

// Remove deletes one record by id.
func (rc *ResourceClient) Remove(id string) error {
	if !rc.resource.CanDelete() {
		return fmt.Errorf("%s cannot be deleted", rc.resource.Title)
	}
	data, status, err := rc.client.del(fmt.Sprintf(rc.resource.DeletePath, url.PathEscape(id)))
	if err != nil {
		return err
	}
	_, err = decodeEnvelope(status, data)
	return err
}

// SetApproval persists an approval flag. Families without an approval
// endpoint accept the change locally and make no request.
func (rc *ResourceClient) SetApproval(id string, approved bool) error {
	if !rc.resource.HasApproval() {
		return fmt.Errorf("%s have no approval status", rc.resource.Title)
	}
	if rc.resource.ApprovalIsLocal() {
		return nil
	}
	body := map[string]bool{rc.resource.StatusField: approved}
	data, status, err := rc.client.patchJSON(fmt.Sprintf(rc.resource.ApprovalPath, url.PathEscape(id)), body)
	if err != nil {
		return err
	}
	_, err = decodeEnvelope(status, data)
	return err
}

// decodeTotal reads { data: { total } } into an integer. A missing total is 0.
func decodeTotal(status int, data []byte) (int64, error) {
	env, err := decodeEnvelope(status, data)
	if err != nil {
		return 0, err
	}
	if env.Data.Kind != ValueObject {
		return 0, nil
	}
	total, ok := env.Data.Object.Get("total")
	if !ok || total.Kind == ValueNull {
		return 0, nil
	}
	switch total.Kind {
	case ValueNumber:
		if n, err := total.Number.Int64(); err == nil {
			return n, nil
		}
		f, err := total.Number.Float64()
		if err != nil {
			return 0, decodeError(err)
		}
		return int64(f), nil
	case ValueText:
		v, err := json.Number(total.Text).Int64()
		if err != nil {
			return 0, decodeError(err)
		}
		return v, nil
	}
	return 0, decodeError(fmt.Errorf("total is not a number"))
}
