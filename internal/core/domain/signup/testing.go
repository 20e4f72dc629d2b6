package signup

import (
	"context"
	"fmt"
	"registrar/internal/core/domain/user"
	"sync"
)

type FakeRepository struct {
	Signups           []Signup
	UserRepository    user.UserRepository
	CreateReturnError bool
	SaveReturnError   bool
	lock              sync.Mutex
}

func NewFakeRepository(userRepository user.UserRepository) *FakeRepository {
	return &FakeRepository{UserRepository: userRepository}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (s Signup, err error) {
	if r.CreateReturnError {
		return s, fmt.Errorf("could not create signup for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	s = Signup{UserID: input.UserID, ActivationKey: input.ActivationKey}
	r.Signups = append(r.Signups, s)
	return s, nil
}

func (r *FakeRepository) GetByUserID(ctx context.Context, userID user.ID) (s Signup, err error) {
	return r.find(func(s Signup) bool { return s.UserID == userID })
}

func (r *FakeRepository) GetByActivationKey(ctx context.Context, key ActivationKey) (s Signup, err error) {
	return r.find(func(s Signup) bool { return s.ActivationKey == key })
}

func (r *FakeRepository) GetByConfirmationKey(ctx context.Context, key ConfirmationKey) (s Signup, err error) {
	return r.find(func(s Signup) bool {
		return s.EmailConfirmationKey.IsPresent && s.EmailConfirmationKey.Value == key
	})
}

func (r *FakeRepository) Save(ctx context.Context, s Signup) (Signup, error) {
	if r.SaveReturnError {
		return s, fmt.Errorf("could not save signup for user %d", s.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Signups {
		if r.Signups[ix].UserID == s.UserID {
			r.Signups[ix] = s
			return s, nil
		}
	}
	return s, ErrSignupDoesNotExist
}

func (r *FakeRepository) Delete(ctx context.Context, userID user.ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, s := range r.Signups {
		if s.UserID == userID {
			r.Signups = append(r.Signups[:ix], r.Signups[ix+1:]...)
			return nil
		}
	}
	return ErrSignupDoesNotExist
}

func (r *FakeRepository) List(ctx context.Context, options ListOptions) ([]Registration, error) {
	r.lock.Lock()
	signups := make([]Signup, len(r.Signups))
	copy(signups, r.Signups)
	r.lock.Unlock()

	registrations := make([]Registration, 0, len(signups))
	for _, s := range signups {
		u, err := r.UserRepository.GetByID(ctx, s.UserID)
		if err != nil {
			return nil, err
		}
		if options.IsActive.IsPresent && u.IsActive != options.IsActive.Value {
			continue
		}
		if options.ActivationNotified.IsPresent && s.ActivationNotified != options.ActivationNotified.Value {
			continue
		}
		if options.JoinedBefore.IsPresent && u.CreatedAt.After(options.JoinedBefore.Value) {
			continue
		}
		registrations = append(registrations, Registration{User: u, Signup: s})
	}
	return registrations, nil
}

func (r *FakeRepository) find(match func(s Signup) bool) (s Signup, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, s := range r.Signups {
		if match(s) {
			return s, nil
		}
	}
	return s, ErrSignupDoesNotExist
}

// FakeKeyGenerator returns Keys in order and repeats the last one when exhausted.
type FakeKeyGenerator struct {
	Keys  []string
	Seeds []string
	lock  sync.Mutex
}

func NewFakeKeyGenerator(keys ...string) *FakeKeyGenerator {
	if len(keys) == 0 {
		panic("at least one key is required")
	}
	return &FakeKeyGenerator{Keys: keys}
}

func (g *FakeKeyGenerator) GenerateKey(seed string) (string, string) {
	g.lock.Lock()
	defer g.lock.Unlock()
	ix := len(g.Seeds)
	if ix >= len(g.Keys) {
		ix = len(g.Keys) - 1
	}
	g.Seeds = append(g.Seeds, seed)
	return "a1b2c", g.Keys[ix]
}

type FakeNotification struct {
	Kind   string
	User   user.User
	Signup Signup
}

const (
	ACTIVATION_EMAIL        = "activation"
	CONFIRMATION_EMAILS     = "confirmation"
	ACTIVATION_NOTIFICATION = "activation_notify"
)

type FakeNotifier struct {
	Sent        []FakeNotification
	ReturnError bool
	FailFor     map[user.ID]bool
	lock        sync.Mutex
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) SendActivationEmail(ctx context.Context, u user.User, s Signup) error {
	return n.send(ACTIVATION_EMAIL, u, s)
}

func (n *FakeNotifier) SendConfirmationEmails(ctx context.Context, u user.User, s Signup) error {
	return n.send(CONFIRMATION_EMAILS, u, s)
}

func (n *FakeNotifier) SendActivationNotification(ctx context.Context, u user.User, s Signup) error {
	return n.send(ACTIVATION_NOTIFICATION, u, s)
}

func (n *FakeNotifier) SentCount() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return len(n.Sent)
}

func (n *FakeNotifier) send(kind string, u user.User, s Signup) error {
	if n.ReturnError || n.FailFor[u.ID] {
		return fmt.Errorf("could not send %s email to user %d", kind, u.ID)
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	n.Sent = append(n.Sent, FakeNotification{Kind: kind, User: u, Signup: s})
	return nil
}
