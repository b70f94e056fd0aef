package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"applytrack/internal/delivery/http/dto"
	"applytrack/internal/domain/application"
	"applytrack/internal/domain/contact"
	"applytrack/internal/domain/user"
	"applytrack/internal/usecase"
	ucauth "applytrack/internal/usecase/auth"

	"github.com/google/uuid"
)

type Services struct {
	Auth            *usecase.Auth
	Contacts        *usecase.Contacts
	Applications    *usecase.Applications
	Calendar        *usecase.Calendar
	ProfilePictures *usecase.ProfilePictures
	Query           *usecase.Query
}

type resolvers struct {
	svc Services
}

// NewAppSchema registers every query and mutation of the API.
func NewAppSchema(svc Services) *Schema {
	r := resolvers{svc: svc}
	s := NewSchema()

	s.Query("users", r.users)
	s.Query("user", r.user)
	s.Query("calendars", r.calendars)
	s.Query("contacts", r.contacts)
	s.Query("applications", r.applications)
	s.Query("profilePicture", r.profilePicture)

	s.Mutation("addUser", r.addUser)
	s.Mutation("login", r.login)
	s.Mutation("addCalendarEvent", r.addCalendarEvent)
	s.Mutation("deleteEvent", r.deleteEvent)
	s.Mutation("editCalendarEvent", r.editCalendarEvent)
	s.Mutation("addContact", r.addContact)
	s.Mutation("deleteContact", r.deleteContact)
	s.Mutation("updateContact", r.updateContact)
	s.Mutation("addApplication", r.addApplication)
	s.Mutation("deleteApplication", r.deleteApplication)
	s.Mutation("updateApplication", r.updateApplication)
	s.Mutation("addProfilePicture", r.addProfilePicture)

	return s
}

func parseID(raw, field string, required bool) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return uuid.Nil, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, field)
		}
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s is not a valid id", usecase.ErrInvalidInput, field)
	}
	return id, nil
}

type ownerArgs struct {
	ID string `json:"_id"`
}

func (r resolvers) users(ctx context.Context, _ *user.Identity, _ json.RawMessage) (any, error) {
	users, err := r.svc.Query.Users(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserListResponse(users), nil
}

func (r resolvers) user(ctx context.Context, _ *user.Identity, vars json.RawMessage) (any, error) {
	var args struct {
		Email string `json:"email"`
	}
	if err := decodeVars(vars, &args); err != nil {
		return nil, err
	}
	u, err := r.svc.Query.UserByEmail(ctx, args.Email)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (r resolvers) calendars(ctx context.Context, identity *user.Identity, _ json.RawMessage) (any, error) {
	events, err := r.svc.Query.Calendars(ctx, identity)
	if err != nil {
		return nil, err
	}
	return dto.NewEventListResponse(events), nil
}

func (r resolvers) contacts(ctx context.Context, _ *user.Identity, vars json.RawMessage) (any, error) {
	var args ownerArgs
	if err := decodeVars(vars, &args); err != nil {
		return nil, err
	}
	owner, err := parseID(args.ID, "_id", true)
	if err != nil {
		return nil, err
	}
	items, err := r.svc.Query.Contacts(ctx, owner)
	if err != nil {
		return nil, err
	}
	return dto.NewContactListResponse(items), nil
}

func (r resolvers) applications(ctx context.Context, _ *user.Identity, vars json.RawMessage) (any, error) {
	var args ownerArgs
	if err := decodeVars(vars, &args); err != nil {
		return nil, err
	}
	owner, err := parseID(args.ID, "_id", true)
	if err != nil {
		return nil, err
	}
	items, err := r.svc.Query.Applications(ctx, owner)
	if err != nil {
		return nil, err
	}
	return dto.NewApplicationListResponse(items), nil
}

func (r resolvers) profilePicture(ctx context.Context, _ *user.Identity, vars json.RawMessage) (any, error) {
	var args ownerArgs
	if err := decodeVars(vars, &args); err != nil {
		return nil, err
	}
	owner, err := parseID(args.ID, "_id", true)
	if err != nil {
		return nil, err
	}
	p, err := r.svc.Query.ProfilePicture(ctx, owner)
	if err != nil {
		return nil, err
	}
	return dto.NewProfilePictureResponse(p), nil
}

func (r resolvers) addUser(ctx context.Context, _ *user.Identity, vars json.RawMessage) (any, error) {
	var args struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := decodeVars(vars, &args); err != nil {
		return nil, err
	}
	res, err := r.svc.Auth.AddUser(ctx, ucauth.RegisterInput{
		FirstName: args.FirstName,
		LastName:  args.LastName,
		Email:     args.Email,
		Password:  args.Password,
	})
	if err != nil {
		return nil, err
	}
	return dto.AuthResponse{Token: res.Token, User: dto.NewUserResponse(res.User)}, nil
}

func (r resolvers) login(ctx context.Context, _ *user.Identity, vars json.RawMessage) (any, error) {
	var args struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeVars(vars, &args); err != nil {
		return nil, err
	}
	res, err := r.svc.Auth.Login(ctx, ucauth.LoginInput{Email: args.Email, Password: args.Password})
	if err != nil {
		return nil, err
	}
	return dto.AuthResponse{Token: res.Token, User: dto.NewUserResponse(res.User)}, nil
}

type eventArgs struct {
	ID   string `json:"id"`
	Todo string `json:"todo"`
	Date any    `json:"date"`
}

func (r resolvers) addCalendarEvent(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error) {
	if err := usecase.Authorize(identity); err != nil {
		return nil, err
	}
	var args eventArgs
	if err := decodeVars(vars, &args); err != nil {
		return nil, err
	}
	e, err := r.svc.Calendar.AddCalendarEvent(ctx, identity, usecase.EventInput{Todo: args.Todo, Date: args.Date})
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponse(e), nil
}

func (r resolvers) deleteEvent(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error) {
	if err := usecase.Authorize(identity); err != nil {
		return nil, err
	}
	var args eventArgs
	if err := decodeVars(vars, &args); err != nil {
		return nil, err
	}
	id, err := parseID(args.ID, "id", true)
	if err != nil {
		return nil, err
	}
	deleted, err := r.svc.Calendar.DeleteEvent(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	return dto.DeletedResponse{ID: deleted}, nil
}

func (r resolvers) editCalendarEvent(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error) {
	if err := usecase.Authorize(identity); err != nil {
		return nil, err
	}
	var args eventArgs
	if err := decodeVars(vars, &args); err != nil {
		return nil, err
	}
	id, err := parseID(args.ID, "id", true)
	if err != nil {
		return nil, err
	}
	e, err := r.svc.Calendar.EditCalendarEvent(ctx, identity, id, usecase.EventInput{Todo: args.Todo, Date: args.Date})
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponse(e), nil
}

type contactArgs struct {
	OwnerID     string `json:"_id"`
	ContactsID  string `json:"contactsId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
}

func (a contactArgs) fields() contact.Fields {
	return contact.Fields{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		CompanyName: a.CompanyName,
		Email:       a.Email,
		Phone:       a.Phone,
		Address1:    a.Address1,
		Address2:    a.Address2,
	}
}

// decodeOwned authorizes before anything else so that an anonymous caller
// always sees UNAUTHENTICATED, whatever the variables look like.
func decodeOwned(identity *user.Identity, vars json.RawMessage, dst any, ownerRaw func() string) (uuid.UUID, error) {
	if err := usecase.Authorize(identity); err != nil {
		return uuid.Nil, err
	}
	if err := decodeVars(vars, dst); err != nil {
		return uuid.Nil, err
	}
	return parseID(ownerRaw(), "_id", false)
}

func (r resolvers) addContact(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error) {
	var args contactArgs
	owner, err := decodeOwned(identity, vars, &args, func() string { return args.OwnerID })
	if err != nil {
		return nil, err
	}
	usr, c, err := r.svc.Contacts.AddContact(ctx, identity, owner, args.fields())
	if err != nil {
		return nil, err
	}
	return dto.ContactPayload{User: dto.NewUserResponse(usr), Contact: dto.NewContactResponse(c)}, nil
}

func (r resolvers) deleteContact(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error) {
	var args contactArgs
	owner, err := decodeOwned(identity, vars, &args, func() string { return args.OwnerID })
	if err != nil {
		return nil, err
	}
	id, err := parseID(args.ContactsID, "contactsId", true)
	if err != nil {
		return nil, err
	}
	deleted, err := r.svc.Contacts.DeleteContact(ctx, identity, owner, id)
	if err != nil {
		return nil, err
	}
	return dto.DeletedResponse{ID: deleted}, nil
}

func (r resolvers) updateContact(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error) {
	var args contactArgs
	owner, err := decodeOwned(identity, vars, &args, func() string { return args.OwnerID })
	if err != nil {
		return nil, err
	}
	id, err := parseID(args.ContactsID, "contactsId", true)
	if err != nil {
		return nil, err
	}
	c, err := r.svc.Contacts.UpdateContact(ctx, identity, owner, id, args.fields())
	if err != nil {
		return nil, err
	}
	return dto.NewContactResponse(c), nil
}

type applicationArgs struct {
	OwnerID        string `json:"_id"`
	ApplicationsID string `json:"applicationsId"`
	ContactName    string `json:"contactName"`
	Position       string `json:"position"`
	CompanyName    string `json:"companyName"`
	AppliedOn      string `json:"appliedOn"`
}

func (a applicationArgs) fields() application.Fields {
	return application.Fields{
		ContactName: a.ContactName,
		Position:    a.Position,
		CompanyName: a.CompanyName,
		AppliedOn:   a.AppliedOn,
	}
}

func (r resolvers) addApplication(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error) {
	var args applicationArgs
	owner, err := decodeOwned(identity, vars, &args, func() string { return args.OwnerID })
	if err != nil {
		return nil, err
	}
	usr, a, err := r.svc.Applications.AddApplication(ctx, identity, owner, args.fields())
	if err != nil {
		return nil, err
	}
	return dto.ApplicationPayload{User: dto.NewUserResponse(usr), Application: dto.NewApplicationResponse(a)}, nil
}

func (r resolvers) deleteApplication(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error) {
	var args applicationArgs
	owner, err := decodeOwned(identity, vars, &args, func() string { return args.OwnerID })
	if err != nil {
		return nil, err
	}
	id, err := parseID(args.ApplicationsID, "applicationsId", true)
	if err != nil {
		return nil, err
	}
	deleted, err := r.svc.Applications.DeleteApplication(ctx, identity, owner, id)
	if err != nil {
		return nil, err
	}
	return dto.DeletedResponse{ID: deleted}, nil
}

func (r resolvers) updateApplication(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error) {
	var args applicationArgs
	owner, err := decodeOwned(identity, vars, &args, func() string { return args.OwnerID })
	if err != nil {
		return nil, err
	}
	id, err := parseID(args.ApplicationsID, "applicationsId", true)
	if err != nil {
		return nil, err
	}
	a, err := r.svc.Applications.UpdateApplication(ctx, identity, owner, id, args.fields())
	if err != nil {
		return nil, err
	}
	return dto.NewApplicationResponse(a), nil
}

func (r resolvers) addProfilePicture(ctx context.Context, identity *user.Identity, vars json.RawMessage) (any, error) {
	var args struct {
		OwnerID    string `json:"_id"`
		PictureURL string `json:"pictureUrl"`
	}
	owner, err := decodeOwned(identity, vars, &args, func() string { return args.OwnerID })
	if err != nil {
		return nil, err
	}
	usr, p, err := r.svc.ProfilePictures.SetProfilePicture(ctx, identity, owner, args.PictureURL)
	if err != nil {
		return nil, err
	}
	return dto.ProfilePicturePayload{User: dto.NewUserResponse(usr), ProfilePicture: dto.NewProfilePictureResponse(&p)}, nil
}
