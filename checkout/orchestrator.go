// ABOUTME: Checkout state machine for storefront orders
// ABOUTME: Validates buyer input, submits order_submitted, and applies the post-order rewards
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/phonestore/cart"
	"github.com/harperreed/phonestore/gamification"
	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/outcome"
	"github.com/harperreed/phonestore/webhook"
)

// User-facing messages.
const (
	MsgMaintenance  = "The shop is currently undergoing maintenance. Please try again in 5 minutes."
	MsgBadPhone     = "Please provide your phone number starting with the country code (e.g., +254...)"
	MsgMissingName  = "Please provide your name"
	MsgEmptyOrder   = "Your cart is empty. Add a phone before checking out."
	MsgBadPayment   = "Please choose M-Pesa, cash, or card"
	MsgOrderFailed  = "Something went wrong while processing your order. Our team has been notified."
	MsgOrderPlaced  = "Thank you for your purchase. Our team will contact you shortly via WhatsApp for delivery."
	MsgBusy         = "Your order is already being submitted"
	MsgAlreadyFinal = "This order has already been placed"
)

var (
	ErrBusy             = errors.New("checkout already submitting")
	ErrAlreadySucceeded = errors.New("checkout already succeeded")
)

// State of the checkout flow.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	}
	return "idle"
}

// Flow distinguishes a single-item purchase from a whole-cart checkout.
type Flow int

const (
	FlowSingleItem Flow = iota
	FlowCart
)

// Request is the buyer's checkout input.
type Request struct {
	Flow          Flow
	Buyer         models.BuyerFields
	PaymentMethod string
}

// Outcome reports the end of a Submit call.
type Outcome struct {
	State    State
	OrderRef string
	Award    *gamification.AwardResult
	Message  string
	Err      error
}

func (o Outcome) OK() bool {
	return o.Err == nil && o.State == Succeeded
}

// Sender is the subset of *webhook.Client the orchestrator uses.
type Sender interface {
	Send(ctx context.Context, url string, req webhook.Request) (*webhook.Response, error)
}

type ConfigSource interface {
	Current() models.Configuration
}

// Rewarder grants points after a successful order.
type Rewarder interface {
	Award(amount int, badge string) gamification.AwardResult
}

type Options struct {
	Client  Sender
	Config  ConfigSource
	Cart    *cart.Store
	Rewards Rewarder
	Logger  *log.Logger
	Now     func() time.Time
}

// Orchestrator owns the checkout state and the currently selected product.
type Orchestrator struct {
	client  Sender
	config  ConfigSource
	cart    *cart.Store
	rewards Rewarder
	logger  *log.Logger
	now     func() time.Time

	mu       sync.Mutex
	state    State
	selected *models.Product
	last     *models.OrderSubmission
	entropy  *ulid.MonotonicEntropy
}

func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		client:  opts.Client,
		config:  opts.Config,
		cart:    opts.Cart,
		rewards: opts.Rewards,
		logger:  logger.WithPrefix("checkout"),
		now:     now,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(now().UnixNano())), 0),
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Select focuses a product for a single-item purchase.
func (o *Orchestrator) Select(p models.Product) {
	o.mu.Lock()
	defer o.mu.Unlock()
	cp := p
	o.selected = &cp
}

// Selected returns the focused product, if any.
func (o *Orchestrator) Selected() (models.Product, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.selected == nil {
		return models.Product{}, false
	}
	return *o.selected, true
}

// ClearSelection drops the focused product without touching the state.
func (o *Orchestrator) ClearSelection() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selected = nil
}

// LastOrder returns the most recent successful submission.
func (o *Orchestrator) LastOrder() (models.OrderSubmission, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last == nil {
		return models.OrderSubmission{}, false
	}
	return *o.last, true
}

// Acknowledge returns a succeeded checkout to Idle and clears the selection.
func (o *Orchestrator) Acknowledge() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != Succeeded {
		return
	}
	o.state = Idle
	o.selected = nil
}

// Submit validates req, sends the order, and on success awards the flow
// bonus and empties the cart. Only one submission runs at a time.
func (o *Orchestrator) Submit(ctx context.Context, req Request) Outcome {
	o.mu.Lock()
	switch o.state {
	case Submitting:
		o.mu.Unlock()
		return rejected(Submitting, &outcome.Error{Kind: outcome.KindValidation, Message: MsgBusy, Err: ErrBusy})
	case Succeeded:
		o.mu.Unlock()
		return rejected(Succeeded, &outcome.Error{Kind: outcome.KindValidation, Message: MsgAlreadyFinal, Err: ErrAlreadySucceeded})
	}

	sub, cfg, err := o.composeLocked(req)
	if err != nil {
		o.mu.Unlock()
		return rejected(Idle, err)
	}
	o.state = Submitting
	o.mu.Unlock()

	o.logger.Info("submitting order", "ref", sub.OrderRef, "items", len(sub.CartItems), "single", sub.Item != nil)

	_, sendErr := o.client.Send(ctx, cfg.WebhookURL, orderRequest(sub))
	if sendErr == nil && ctx.Err() != nil {
		sendErr = fmt.Errorf("order response arrived after cancellation: %w", ctx.Err())
	}

	if sendErr != nil {
		o.logger.Error("order submission failed", "ref", sub.OrderRef, "err", sendErr)
		o.mu.Lock()
		o.state = Idle
		o.mu.Unlock()
		kind := outcome.KindOf(sendErr)
		if kind == 0 {
			kind = outcome.KindNetwork
		}
		return rejected(Idle, &outcome.Error{Kind: kind, Message: MsgOrderFailed, Err: sendErr})
	}

	o.mu.Lock()
	o.state = Succeeded
	o.last = &sub
	o.mu.Unlock()

	var award *gamification.AwardResult
	if o.rewards != nil {
		res := o.rewards.Award(bonusFor(req.Flow))
		award = &res
	}
	if o.cart != nil {
		o.cart.Clear()
	}

	o.logger.Info("order placed", "ref", sub.OrderRef)
	return Outcome{State: Succeeded, OrderRef: sub.OrderRef, Award: award, Message: MsgOrderPlaced}
}

func bonusFor(flow Flow) (int, string) {
	if flow == FlowCart {
		return gamification.RewardCartOrder, ""
	}
	return gamification.RewardFirstOrder, gamification.BadgeFirstOrder
}

func rejected(state State, err *outcome.Error) Outcome {
	return Outcome{State: state, Message: err.Message, Err: err}
}

func (o *Orchestrator) composeLocked(req Request) (models.OrderSubmission, models.Configuration, *outcome.Error) {
	cfg := o.config.Current()
	if !cfg.HasWebhook() {
		return models.OrderSubmission{}, cfg, outcome.Configuration(MsgMaintenance)
	}

	buyer := req.Buyer
	buyer.CustomerName = strings.TrimSpace(buyer.CustomerName)
	buyer.CustomerPhone = strings.TrimSpace(buyer.CustomerPhone)
	buyer.CustomerEmail = strings.TrimSpace(buyer.CustomerEmail)

	if !strings.HasPrefix(buyer.CustomerPhone, "+") {
		return models.OrderSubmission{}, cfg, outcome.Validation(MsgBadPhone)
	}
	if buyer.CustomerName == "" {
		return models.OrderSubmission{}, cfg, outcome.Validation(MsgMissingName)
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = models.PaymentMpesa
	}
	switch payment {
	case models.PaymentMpesa, models.PaymentCash, models.PaymentCard:
	default:
		return models.OrderSubmission{}, cfg, outcome.Validation(MsgBadPayment)
	}

	var items []models.CartItem
	if o.cart != nil {
		items = o.cart.Items()
	}

	var item *models.Product
	if req.Flow == FlowSingleItem && o.selected != nil {
		cp := *o.selected
		item = &cp
	}
	if item == nil && len(items) == 0 {
		return models.OrderSubmission{}, cfg, outcome.Validation(MsgEmptyOrder)
	}

	now := o.now()
	return models.OrderSubmission{
		OrderRef:      "ORD-" + ulid.MustNew(ulid.Timestamp(now), o.entropy).String(),
		Source:        models.SourceCustomer,
		Item:          item,
		CartItems:     items,
		Buyer:         buyer,
		PaymentMethod: payment,
		SubmittedAt:   now,
	}, cfg, nil
}

func orderRequest(sub models.OrderSubmission) webhook.OrderSubmitted {
	return webhook.OrderSubmitted{
		Source:    sub.Source,
		OrderRef:  sub.OrderRef,
		Phone:     sub.Item,
		CartItems: sub.CartItems,
		Customer: webhook.OrderCustomer{
			BuyerFields:   sub.Buyer,
			PaymentMethod: sub.PaymentMethod,
		},
	}
}
