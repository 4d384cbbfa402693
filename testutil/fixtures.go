// Package testutil provides shared fixtures for engine tests: a small but
// realistic registry exercising temporal disambiguation, collisions, and a
// control entity.
package testutil

import (
	"github.com/caribdigital/graphhansard/registry"
)

// SampleRegistryJSON is a registry source document covering the behaviors
// the resolver and extractor tests depend on: a September 3, 2023 cabinet
// reshuffle that moves the Works portfolio between two members, a curated
// alias collision, and a control-category presiding officer.
const SampleRegistryJSON = `{
  "metadata": {
    "version": "2021-parliament-v3",
    "parliament": "14th Parliament",
    "parliament_start": "2021-09-23",
    "total_seats": 39,
    "last_updated": "2024-02-01"
  },
  "entities": [
    {
      "id": "mp_davis_brave",
      "legal_name": "Philip Edward Davis",
      "common_name": "Brave Davis",
      "category": "participant",
      "affiliation": "PLP",
      "constituency": "Cat Island, Rum Cay and San Salvador",
      "status": "active",
      "role_tenures": [
        {"title": "Prime Minister", "short_title": "PM", "start_date": "2021-09-17"}
      ],
      "manual_aliases": ["Brave", "Member for Cat Island"]
    },
    {
      "id": "mp_cooper_chester",
      "legal_name": "I. Chester Cooper",
      "common_name": "Chester Cooper",
      "category": "participant",
      "affiliation": "PLP",
      "constituency": "The Exumas and Ragged Island",
      "status": "active",
      "role_tenures": [
        {"title": "Deputy Prime Minister", "short_title": "DPM", "start_date": "2021-09-17"},
        {"title": "Minister of Tourism", "start_date": "2021-09-17"}
      ]
    },
    {
      "id": "mp_sears_alfred",
      "legal_name": "Alfred Michael Sears",
      "common_name": "Alfred Sears",
      "category": "participant",
      "affiliation": "PLP",
      "constituency": "Fort Charlotte",
      "status": "active",
      "role_tenures": [
        {"title": "Minister of Works", "short_title": "Works Minister", "start_date": "2021-09-17", "end_date": "2023-09-03"},
        {"title": "Minister of Immigration", "start_date": "2023-09-03"}
      ]
    },
    {
      "id": "mp_sweeting_clay",
      "legal_name": "Clay Glenwood Sweeting",
      "common_name": "Clay Sweeting",
      "category": "participant",
      "affiliation": "PLP",
      "constituency": "Central and South Eleuthera",
      "status": "active",
      "role_tenures": [
        {"title": "Minister of Works", "start_date": "2023-09-03"}
      ]
    },
    {
      "id": "mp_pintard_michael",
      "legal_name": "Michael Colin Pintard",
      "common_name": "Michael Pintard",
      "category": "participant",
      "affiliation": "FNM",
      "constituency": "Marco City",
      "status": "active",
      "role_tenures": [
        {"title": "Leader of the Opposition", "start_date": "2021-11-27"}
      ]
    },
    {
      "id": "mp_thompson_kwasi",
      "legal_name": "Kwasi Thompson",
      "common_name": "Kwasi Thompson",
      "category": "participant",
      "affiliation": "FNM",
      "constituency": "East Grand Bahama",
      "status": "active"
    },
    {
      "id": "mp_minnis_hubert",
      "legal_name": "Hubert Alexander Minnis",
      "common_name": "Hubert Minnis",
      "category": "participant",
      "affiliation": "FNM",
      "constituency": "Killarney",
      "status": "active",
      "manual_aliases": ["Doc"]
    },
    {
      "id": "mp_darville_michael",
      "legal_name": "Michael Darville",
      "common_name": "Michael Darville",
      "category": "participant",
      "affiliation": "PLP",
      "constituency": "Tall Pines",
      "status": "active",
      "role_tenures": [
        {"title": "Minister of Health", "start_date": "2021-09-17"}
      ],
      "manual_aliases": ["Doc"]
    },
    {
      "id": "mp_deveaux_patricia",
      "legal_name": "Patricia Deveaux",
      "common_name": "Patricia Deveaux",
      "category": "control",
      "affiliation": "PLP",
      "constituency": "Bamboo Town",
      "status": "active",
      "role_tenures": [
        {"title": "Speaker of the House", "short_title": "Madam Speaker", "start_date": "2021-10-06"}
      ]
    }
  ],
  "alias_collisions": [
    {
      "alias": "Doc",
      "claimants": ["mp_darville_michael", "mp_minnis_hubert"],
      "resolution_strategy": "prefer context; both claimants hold medical titles"
    }
  ]
}`

// SampleRegistry parses SampleRegistryJSON. It panics on error because the
// fixture is a compile-time constant; tests would fail loudly anyway.
func SampleRegistry() *registry.Registry {
	reg, err := registry.Parse([]byte(SampleRegistryJSON))
	if err != nil {
		panic(err)
	}
	return reg
}

// SampleIndex builds the alias index for the sample registry.
func SampleIndex() *registry.AliasIndex {
	return registry.BuildAliasIndex(SampleRegistry())
}
