package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"

	"github.com/jwalitptl/nutri-api/pkg/auth"
)

type seedEnv struct {
	NutritionistID string `envconfig:"NUTRI_SEED_NUTRITIONIST_ID"`
}

func seedOwner() (auth.Identity, error) {
	var env seedEnv
	if err := envconfig.Process("", &env); err != nil {
		return auth.Identity{}, err
	}
	if env.NutritionistID == "" {
		return auth.Identity{}, errors.New("NUTRI_SEED_NUTRITIONIST_ID is required in multi tenancy mode")
	}
	id, err := uuid.Parse(env.NutritionistID)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("invalid NUTRI_SEED_NUTRITIONIST_ID: %w", err)
	}
	return auth.Identity{NutritionistID: id}, nil
}
