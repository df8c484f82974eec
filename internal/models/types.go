package models

// Category is the classification assigned to a user request.
type Category string

const (
	CategoryTask          Category = "task"
	CategoryMeal          Category = "meal"
	CategoryShopping      Category = "shopping"
	CategoryReminder      Category = "reminder"
	CategoryAppointment   Category = "appointment"
	CategoryFamily        Category = "family"
	CategoryPet           Category = "pet"
	CategoryClarification Category = "clarification"
	CategoryUnknown       Category = "unknown"
)

// Categories lists every valid intent category.
var Categories = []Category{
	CategoryTask,
	CategoryMeal,
	CategoryShopping,
	CategoryReminder,
	CategoryAppointment,
	CategoryFamily,
	CategoryPet,
	CategoryClarification,
	CategoryUnknown,
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Intent is a classified user request. It is ephemeral: one request, one intent.
type Intent struct {
	Type             Category `json:"type"`
	Confidence       float64  `json:"confidence"`
	Raw              string   `json:"raw"`
	Payload          Payload  `json:"payload,omitempty"`
	FollowUpQuestion string   `json:"follow_up_question,omitempty"`
}

// Actionable reports whether the intent can be turned into a command.
func (i *Intent) Actionable() bool {
	return i.Type != CategoryClarification && i.Type != CategoryUnknown
}

// Entity identifies one of the household record kinds a command can mutate.
type Entity string

const (
	EntityTask        Entity = "task"
	EntityMeal        Entity = "meal"
	EntityShopping    Entity = "shopping"
	EntityReminder    Entity = "reminder"
	EntityAppointment Entity = "appointment"
	EntityFamily      Entity = "family"
	EntityPet         Entity = "pet"
)

// Entities lists every entity the dispatcher can route to.
var Entities = []Entity{
	EntityTask,
	EntityMeal,
	EntityShopping,
	EntityReminder,
	EntityAppointment,
	EntityFamily,
	EntityPet,
}

// Payload is the closed union of per-entity structured data. Every payload
// knows which entity it belongs to, so boundaries can validate exhaustively
// instead of passing untyped data around.
type Payload interface {
	Entity() Entity
}

// Task categories for TaskPayload.Category.
const (
	TaskCategoryCleaning    = "cleaning"
	TaskCategoryErrands     = "errands"
	TaskCategoryKids        = "kids"
	TaskCategoryMaintenance = "home-maintenance"
	TaskCategoryOther       = "other"
)

// Meal types for MealPayload.MealType.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

type TaskPayload struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Category string `json:"category"`
	DueDate  string `json:"due_date,omitempty"`
	Priority string `json:"priority,omitempty"`
}

func (TaskPayload) Entity() Entity { return EntityTask }

type MealPayload struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	MealType     string `json:"meal_type"`
	Day          string `json:"day,omitempty"`
	DietaryNotes string `json:"dietary_notes,omitempty"`
}

func (MealPayload) Entity() Entity { return EntityMeal }

type ShoppingPayload struct {
	ID       string   `json:"id,omitempty"`
	Items    []string `json:"items"`
	Category string   `json:"category,omitempty"`
}

func (ShoppingPayload) Entity() Entity { return EntityShopping }

type ReminderPayload struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Time  string `json:"time,omitempty"`
	Date  string `json:"date,omitempty"`
}

func (ReminderPayload) Entity() Entity { return EntityReminder }

type AppointmentPayload struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty"`
}

func (AppointmentPayload) Entity() Entity { return EntityAppointment }

type FamilyPayload struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Age          int    `json:"age,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (FamilyPayload) Entity() Entity { return EntityFamily }

type PetPayload struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Breed string `json:"breed,omitempty"`
	Age   int    `json:"age,omitempty"`
	Notes string `json:"notes,omitempty"`
}

func (PetPayload) Entity() Entity { return EntityPet }

// PayloadID extracts the record id from any payload in the union.
func PayloadID(p Payload) string {
	switch v := p.(type) {
	case TaskPayload:
		return v.ID
	case MealPayload:
		return v.ID
	case ShoppingPayload:
		return v.ID
	case ReminderPayload:
		return v.ID
	case AppointmentPayload:
		return v.ID
	case FamilyPayload:
		return v.ID
	case PetPayload:
		return v.ID
	default:
		return ""
	}
}
