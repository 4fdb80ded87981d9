package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	serviceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Service",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Float},
			"providerId":  &graphql.Field{Type: graphql.String},
			"latitude":    &graphql.Field{Type: graphql.Float},
			"longitude":   &graphql.Field{Type: graphql.Float},
			"imageURL":    &graphql.Field{Type: graphql.String},
			"status":      &graphql.Field{Type: graphql.String},
		},
	})

	providerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Provider",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"ownerName":    &graphql.Field{Type: graphql.String},
			"workshopName": &graphql.Field{Type: graphql.String},
			"mobile":       &graphql.Field{Type: graphql.String},
			"address":      &graphql.Field{Type: graphql.String},
			"serviceType":  &graphql.Field{Type: graphql.String},
			"imageURL":     &graphql.Field{Type: graphql.String},
			"latitude":     &graphql.Field{Type: graphql.Float},
			"longitude":    &graphql.Field{Type: graphql.Float},
			"userId":       &graphql.Field{Type: graphql.String},
			"status":       &graphql.Field{Type: graphql.String},
			"distance":     &graphql.Field{Type: graphql.Float},
			"services":     &graphql.Field{Type: graphql.NewList(serviceType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"providersNearby": &graphql.Field{
				Type:        graphql.NewList(providerType),
				Description: "Find providers near a location, sorted by distance",
				Args: graphql.FieldConfigArgument{
					"lat":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"serviceType": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"radius":      &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lng := p.Args["lng"].(float64)
					st := p.Args["serviceType"].(string)
					radius := p.Args["radius"].(float64)
					return deps.Nearby.FindNearby(p.Context, lat, lng, st, radius)
				},
			},
			"providersByService": &graphql.Field{
				Type:        graphql.NewList(providerType),
				Description: "Approved providers for an exact service type",
				Args: graphql.FieldConfigArgument{
					"serviceType": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Providers.ByServiceType(p.Context, p.Args["serviceType"].(string))
				},
			},
			"services": &graphql.Field{
				Type:        graphql.NewList(serviceType),
				Description: "All service records",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Services.List(p.Context)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// A failure here is a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
