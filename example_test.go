package simpleserde_test

import (
	"fmt"

	simpleserde "github.com/DonalChilde/pfmsoft-simple-serializer"
)

func ExampleNewStruct() {
	type Person struct {
		Name  string   `json:"name"`
		Items []string `json:"items"`
	}

	converter := simpleserde.NewStruct[Person](nil)

	simple, err := converter.Encode(Person{
		Name:  "bob",
		Items: []string{"chair", "table"},
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(simple["name"], simple["items"])
	// Output: bob [chair table]
}

func ExampleNew() {
	type Temperature struct {
		Celsius float64
	}

	converter := simpleserde.New[Temperature, simpleserde.Map](
		simpleserde.AsInfallibleEncoderFunc(func(t Temperature) simpleserde.Map {
			return simpleserde.Map{"celsius": t.Celsius}
		}),
		simpleserde.AsDecoderFunc(func(simple simpleserde.Map) (Temperature, error) {
			celsius, ok := simple["celsius"].(float64)
			if !ok {
				return Temperature{}, fmt.Errorf("missing celsius value")
			}

			return Temperature{Celsius: celsius}, nil
		}),
	)

	simple, _ := converter.Encode(Temperature{Celsius: 21.5})
	back, _ := converter.Decode(simple)

	fmt.Println(simple["celsius"], back.Celsius)
	// Output: 21.5 21.5
}

func ExampleConverter_Decode_missingDecoder() {
	type Person struct {
		Name string `json:"name"`
	}

	converter := simpleserde.NewStruct[Person](nil)

	_, err := converter.Decode(simpleserde.Map{"name": "bob"})
	fmt.Println(err)
	// Output: simpleserde: no decoder configured
}
