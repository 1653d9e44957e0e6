package schema_test

import (
	"encoding/json"
	"fmt"

	"github.com/Gobd/docer/schema"
)

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func (u *User) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&u.Name, schema.Required, schema.Length(1, 100)),
		schema.Field(&u.Email, schema.Required, schema.Email),
		schema.Field(&u.Age, schema.Min(0), schema.Max(150)),
	}
}

func ExampleValidate() {
	err := schema.Validate(&User{Age: -1})
	fmt.Println(err)
	// Output: age: must be no less than 0; email: cannot be blank; name: cannot be blank.
}

func ExamplePropertyNames() {
	names, _ := schema.PropertyNames(User{})
	fmt.Println(names)
	// Output: [name email age]
}

func ExamplePrint() {
	ref, _ := schema.Print(User{})
	b, _ := json.Marshal(ref.Value.Required)
	fmt.Println(string(b))
	// Output: ["name","email"]
}
