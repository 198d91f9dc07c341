package catalog

import (
	"encoding/json"

	"github.com/cloudmeta/catalog/core"
)

var defaultRulesJson = `
{
    "statements": {
        "get_image": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    },
                    {
                        "op": "IsMember"
                    },
                    {
                        "op": "VisibilityIs",
                        "const": "public"
                    },
                    {
                        "op": "VisibilityIs",
                        "const": "community"
                    }
                ]
            }
        },
        "download_image": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    },
                    {
                        "op": "IsMember"
                    },
                    {
                        "op": "VisibilityIs",
                        "const": "public"
                    },
                    {
                        "op": "VisibilityIs",
                        "const": "community"
                    }
                ]
            }
        },
        "add_image": {
            "condition": {
                "op": "Not",
                "args": [
                    {
                        "op": "Eq",
                        "args": [
                            {
                                "op": "RequesterID"
                            },
                            {
                                "op": "Const",
                                "const": ""
                            }
                        ]
                    }
                ]
            }
        },
        "modify_image": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "delete_image": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "upload_image": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "set_image_location": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "delete_image_location": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "publicize_image": {
            "condition": {
                "op": "IsAdmin"
            }
        },
        "communitize_image": {
            "condition": {
                "op": "IsAdmin"
            }
        },
        "get_metadef_namespace": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    },
                    {
                        "op": "VisibilityIs",
                        "const": "public"
                    }
                ]
            }
        },
        "add_metadef_namespace": {
            "condition": {
                "op": "Not",
                "args": [
                    {
                        "op": "Eq",
                        "args": [
                            {
                                "op": "RequesterID"
                            },
                            {
                                "op": "Const",
                                "const": ""
                            }
                        ]
                    }
                ]
            }
        },
        "modify_metadef_namespace": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "delete_metadef_namespace": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "modify_metadef_object": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "delete_metadef_object": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "modify_metadef_property": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "delete_metadef_property": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "delete_metadef_tags": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "add_metadef_resource_type_association": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "get_task": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "modify_task": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "delete_task": {
            "condition": {
                "op": "Or",
                "args": [
                    {
                        "op": "IsAdmin"
                    },
                    {
                        "op": "IsOwner"
                    }
                ]
            }
        },
        "add_task": {
            "condition": {
                "op": "Not",
                "args": [
                    {
                        "op": "Eq",
                        "args": [
                            {
                                "op": "RequesterID"
                            },
                            {
                                "op": "Const",
                                "const": ""
                            }
                        ]
                    }
                ]
            }
        }
    },
    "defaults": {
        "get_images": true,
        "get_tasks": true,
        "get_metadef_namespaces": true,
        "get_metadef_object": true,
        "get_metadef_objects": true,
        "get_metadef_properties": true,
        "add_metadef_object": true,
        "add_metadef_property": true,
        "add_metadef_tag": true,
        "get_metadef_tags": true,
        "list_metadef_resource_types": true
    }
}`

// GetDefaultRuleDocument returns the rules the enforcer ships with.
// Deployments override them via the rule document URL.
func GetDefaultRuleDocument() core.RuleDocument {
	document := core.RuleDocument{}
	err := json.Unmarshal([]byte(defaultRulesJson), &document)
	if err != nil {
		panic("failed to parse default rule document")
	}

	return document
}
