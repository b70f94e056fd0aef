package client

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	MutationAddUser = `mutation addUser($firstName: String!, $lastName: String, $email: String!, $password: String!) {
  addUser(firstName: $firstName, lastName: $lastName, email: $email, password: $password) { token user { _id firstName lastName email } }
}`
	MutationLogin = `mutation login($email: String!, $password: String!) {
  login(email: $email, password: $password) { token user { _id firstName lastName email } }
}`
	QueryContacts = `query contacts($_id: ID!) {
  contacts(_id: $_id) { _id firstName lastName companyName email phone address1 address2 }
}`
	MutationAddContact = `mutation addContact($_id: ID, $firstName: String, $lastName: String, $companyName: String, $email: String, $phone: String, $address1: String, $address2: String) {
  addContact(_id: $_id, firstName: $firstName, lastName: $lastName, companyName: $companyName, email: $email, phone: $phone, address1: $address1, address2: $address2) {
    user { _id } contact { _id firstName lastName companyName email phone address1 address2 }
  }
}`
	QueryApplications = `query applications($_id: ID!) {
  applications(_id: $_id) { _id contactName position companyName appliedOn }
}`
	MutationAddApplication = `mutation addApplication($_id: ID, $contactName: String, $position: String, $companyName: String, $appliedOn: String) {
  addApplication(_id: $_id, contactName: $contactName, position: $position, companyName: $companyName, appliedOn: $appliedOn) {
    user { _id } application { _id contactName position companyName appliedOn }
  }
}`
)

type User struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Contact struct {
	ID          uuid.UUID `json:"_id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	CompanyName string    `json:"companyName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address1    string    `json:"address1"`
	Address2    string    `json:"address2"`
}

type Application struct {
	ID          uuid.UUID `json:"_id"`
	ContactName string    `json:"contactName"`
	Position    string    `json:"position"`
	CompanyName string    `json:"companyName"`
	AppliedOn   string    `json:"appliedOn"`
}

type contactPayload struct {
	User    User    `json:"user"`
	Contact Contact `json:"contact"`
}

type applicationPayload struct {
	User        User        `json:"user"`
	Application Application `json:"application"`
}

func (c *Client) SignUp(ctx context.Context, firstName, lastName, email, password string) (AuthPayload, error) {
	var out AuthPayload
	err := c.Do(ctx, "addUser", MutationAddUser, map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"password":  password,
	}, &out)
	if err != nil {
		return AuthPayload{}, err
	}
	c.session.Login(out.Token)
	return out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthPayload, error) {
	var out AuthPayload
	if err := c.Do(ctx, "login", MutationLogin, map[string]string{"email": email, "password": password}, &out); err != nil {
		return AuthPayload{}, err
	}
	c.session.Login(out.Token)
	return out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.session.Logout(ctx)
}

// Contacts lists the signed-in user's contacts, cache first.
func (c *Client) Contacts(ctx context.Context) ([]Contact, error) {
	vars, err := c.ownerVars()
	if err != nil {
		return nil, err
	}
	var out []Contact
	if err := c.Query(ctx, "contacts", QueryContacts, vars, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddContact creates a contact, merges it into the cached contacts list and
// then refetches the list so the cache ends up matching the server.
func (c *Client) AddContact(ctx context.Context, in Contact) (Contact, error) {
	vars, err := c.ownerVars()
	if err != nil {
		return Contact{}, err
	}

	var payload contactPayload
	err = c.Do(ctx, "addContact", MutationAddContact, map[string]string{
		"_id":         vars["_id"],
		"firstName":   in.FirstName,
		"lastName":    in.LastName,
		"companyName": in.CompanyName,
		"email":       in.Email,
		"phone":       in.Phone,
		"address1":    in.Address1,
		"address2":    in.Address2,
	}, &payload)
	if err != nil {
		return Contact{}, err
	}

	c.reconciler.Reconcile(ctx, CacheKey(QueryContacts, vars), payload.Contact)
	if err := c.Refetch(ctx, "contacts", QueryContacts, vars, nil); err != nil {
		c.log.Warn("refetch contacts failed", "error", err)
	}
	return payload.Contact, nil
}

func (c *Client) Applications(ctx context.Context) ([]Application, error) {
	vars, err := c.ownerVars()
	if err != nil {
		return nil, err
	}
	var out []Application
	if err := c.Query(ctx, "applications", QueryApplications, vars, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddApplication(ctx context.Context, in Application) (Application, error) {
	vars, err := c.ownerVars()
	if err != nil {
		return Application{}, err
	}

	var payload applicationPayload
	err = c.Do(ctx, "addApplication", MutationAddApplication, map[string]string{
		"_id":         vars["_id"],
		"contactName": in.ContactName,
		"position":    in.Position,
		"companyName": in.CompanyName,
		"appliedOn":   in.AppliedOn,
	}, &payload)
	if err != nil {
		return Application{}, err
	}

	c.reconciler.Reconcile(ctx, CacheKey(QueryApplications, vars), payload.Application)
	if err := c.Refetch(ctx, "applications", QueryApplications, vars, nil); err != nil {
		c.log.Warn("refetch applications failed", "error", err)
	}
	return payload.Application, nil
}
