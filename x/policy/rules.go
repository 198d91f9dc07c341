package policy

// Rule names evaluated by the injected enforcer. Rules are data: the
// engine never interprets them beyond pairing an action with the read
// rule that would reveal the resource's existence.
const (
	RuleGetImage            = "get_image"
	RuleGetImages           = "get_images"
	RuleAddImage            = "add_image"
	RuleModifyImage         = "modify_image"
	RuleDeleteImage         = "delete_image"
	RuleUploadImage         = "upload_image"
	RuleDownloadImage       = "download_image"
	RuleSetImageLocation    = "set_image_location"
	RuleDeleteImageLocation = "delete_image_location"
	RulePublicizeImage      = "publicize_image"
	RuleCommunitizeImage    = "communitize_image"

	RuleGetMetadefNamespace    = "get_metadef_namespace"
	RuleGetMetadefNamespaces   = "get_metadef_namespaces"
	RuleAddMetadefNamespace    = "add_metadef_namespace"
	RuleModifyMetadefNamespace = "modify_metadef_namespace"
	RuleDeleteMetadefNamespace = "delete_metadef_namespace"

	RuleGetMetadefObject    = "get_metadef_object"
	RuleGetMetadefObjects   = "get_metadef_objects"
	RuleAddMetadefObject    = "add_metadef_object"
	RuleModifyMetadefObject = "modify_metadef_object"
	RuleDeleteMetadefObject = "delete_metadef_object"

	RuleAddMetadefProperty    = "add_metadef_property"
	RuleGetMetadefProperties  = "get_metadef_properties"
	RuleModifyMetadefProperty = "modify_metadef_property"
	RuleDeleteMetadefProperty = "delete_metadef_property"

	RuleAddMetadefTag     = "add_metadef_tag"
	RuleGetMetadefTags    = "get_metadef_tags"
	RuleDeleteMetadefTags = "delete_metadef_tags"

	RuleAddMetadefResourceTypeAssociation = "add_metadef_resource_type_association"
	RuleListMetadefResourceTypes          = "list_metadef_resource_types"

	RuleGetTask    = "get_task"
	RuleGetTasks   = "get_tasks"
	RuleAddTask    = "add_task"
	RuleModifyTask = "modify_task"
	RuleDeleteTask = "delete_task"
)
